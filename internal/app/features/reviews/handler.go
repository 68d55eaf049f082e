// internal/app/features/reviews/handler.go
package reviews

import (
	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/limits"
	"github.com/dalemusser/kasula/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the reviews embedded in recipes. Every create, update and
// delete is followed by a rating recompute on the parent recipe.
type Handler struct {
	Recipes     *recipestore.Store
	Users       *userstore.Store
	Images      *imagestore.Uploader
	Notify      *notify.Notifier
	MaxUploadMB int

	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, images *imagestore.Uploader, maxUploadMB int, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	users := userstore.New(db)
	return &Handler{
		Recipes:     recipestore.New(db),
		Users:       users,
		Images:      images,
		Notify:      notify.New(users, logger),
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
	msgReviewRequired = "review field is required"
	msgRecipeNotFound = "Recipe %s not found"
	msgReviewNotFound = "Review %s not found"
	msgNotAuthor      = "Not authorized to modify this review"
	msgRatingRange    = "Rating must be between 0 and 5"
	msgReviewDeleted  = "Review successfully deleted"
)
