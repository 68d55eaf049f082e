package reviews

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func deny(w http.ResponseWriter, d *reviewpolicy.Denial) {
	if d.Forbidden {
		apierrors.Forbidden(w, d.Message)
		return
	}
	apierrors.BadRequest(w, d.Message)
}

func (h *Handler) recipeNotFound(w http.ResponseWriter, id string) {
	apierrors.NotFound(w, fmt.Sprintf(msgRecipeNotFound, id))
}

// loadRecipe writes 404/500 itself and reports whether rec is usable.
func (h *Handler) loadRecipe(w http.ResponseWriter, r *http.Request, id string) (*models.Recipe, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load recipe")
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.recipeNotFound(w, id)
		return nil, false
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "load recipe failed", err)
		return nil, false
	}
	return rec, true
}

// loadReview loads the recipe and finds reviewID in it.
func (h *Handler) loadReview(w http.ResponseWriter, r *http.Request, recipeID, reviewID string) (*models.Recipe, models.Review, bool) {
	rec, ok := h.loadRecipe(w, r, recipeID)
	if !ok {
		return nil, models.Review{}, false
	}
	rv, ok := rec.FindReview(reviewID)
	if !ok {
		apierrors.NotFound(w, fmt.Sprintf(msgReviewNotFound, reviewID))
		return nil, models.Review{}, false
	}
	return rec, rv, true
}

// recompute refreshes the recipe's stored average after a review change.
func (h *Handler) recompute(w http.ResponseWriter, r *http.Request, recipeID string) bool {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "recompute rating")
	defer cancel()

	avg, err := h.Recipes.RecomputeRating(ctx, recipeID)
	if err != nil {
		h.ErrLog.Log500(w, r, "recompute rating failed", err)
		return false
	}
	h.Log.Debug("rating recomputed", zap.String("recipe_id", recipeID), zap.Float64("average", avg))
	return true
}
