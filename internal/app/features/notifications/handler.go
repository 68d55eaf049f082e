// internal/app/features/notifications/handler.go
package notifications

import (
	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the per-user notification inbox stored on the user
// document.
type Handler struct {
	Users *userstore.Store

	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

const (
	msgInvalidBody          = "Invalid request body"
	msgUserNotFound         = "User %s not found"
	msgNotificationNotFound = "Notification %s not found"
	msgNotYourInbox         = "Not authorized to access these notifications"
	msgInvalidStatus        = "Invalid notification status"
)
