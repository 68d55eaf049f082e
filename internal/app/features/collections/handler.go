// internal/app/features/collections/handler.go
package collections

import (
	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	collectionstore "github.com/dalemusser/kasula/internal/app/store/collections"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves user-owned recipe collections. Reads follow the owner's
// visibility; writes are owner only.
type Handler struct {
	Collections *collectionstore.Store
	Recipes     *recipestore.Store
	Users       *userstore.Store

	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Collections: collectionstore.New(db),
		Recipes:     recipestore.New(db),
		Users:       userstore.New(db),
		Log:         logger,
		ErrLog:      errLog,
	}
}

// Client-facing detail strings.
const (
	msgInvalidBody        = "Invalid request body"
	msgCollectionNotFound = "Collection %s not found"
	msgRecipeNotFound     = "Recipe %s not found"
	msgUserNotFound       = "User %s not found"
	msgNotOwner           = "Not authorized to modify this collection"
	msgCannotView         = "Not authorized to view this collection"
	msgCannotViewUser     = "Not authorized to view this user's collections"
	msgCollectionDeleted  = "Collection successfully deleted"
)
