// internal/app/features/recipes/handler.go
package recipes

import (
	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	collectionstore "github.com/dalemusser/kasula/internal/app/store/collections"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/limits"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns recipe CRUD and listing.
type Handler struct {
	Recipes     *recipestore.Store
	Users       *userstore.Store
	Collections *collectionstore.Store
	Images      *imagestore.Uploader
	MaxUploadMB int

	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, images *imagestore.Uploader, maxUploadMB int, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Recipes:     recipestore.New(db),
		Users:       userstore.New(db),
		Collections: collectionstore.New(db),
		Images:      images,
		MaxUploadMB: maxUploadMB,
		Log:         logger,
		ErrLog:      errLog,
	}
}

func (h *Handler) maxUploadBytes() int64 {
	return limits.UploadBytes(h.MaxUploadMB)
}

// Client-facing detail strings.
const (
	msgRecipeRequired  = "recipe field is required"
	msgRecipeNotFound  = "Recipe %s not found"
	msgUserNotFound    = "User %s not found"
	msgCannotView      = "Not authorized to view this recipe"
	msgCannotViewUser  = "Not authorized to view this user's recipes"
	msgNotOwner        = "Not authorized to modify this recipe"
	msgRecipeDeleted   = "Recipe successfully deleted"
	msgTooManyImages   = "Too many images"
	msgNoUpdateContent = "Nothing to update"
)
