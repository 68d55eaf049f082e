// internal/app/features/reviews/delete.go
package reviews

import (
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete removes the caller's review and refreshes the average.
//
// Route: DELETE /review/{recipe_id}/{review_id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "recipe_id")
	reviewID := chi.URLParam(r, "review_id")

	_, rv, ok := h.loadReview(w, r, recipeID, reviewID)
	if !ok {
		return
	}
	if !reviewpolicy.CanModify(r, rv) {
		apierrors.Forbidden(w, msgNotAuthor)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete review")
	defer cancel()

	err := h.Recipes.RemoveReview(ctx, recipeID, reviewID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.recipeNotFound(w, recipeID)
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "delete review failed", err)
		return
	}
	if !h.recompute(w, r, recipeID) {
		return
	}

	metrics.ReviewEvents.WithLabelValues("delete").Inc()
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgReviewDeleted})
}
