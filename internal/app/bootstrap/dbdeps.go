// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"github.com/dalemusser/kasula/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Services is allocated by ConnectDB and filled in by Startup.
	Services *Services
}

// Services are the non-database collaborators shared by feature handlers.
type Services struct {
	Tokens *auth.Manager
	Mail   mailer.Sender
	Images *imagestore.Uploader
	Jobs   *tasks.Scheduler
}
