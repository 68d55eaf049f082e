// internal/app/features/reviews/like.go
package reviews

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleLike adds the caller's like to a review and notifies its author.
//
// Route: PATCH /review/like/{recipe_id}/{review_id}
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)
	recipeID := chi.URLParam(r, "recipe_id")
	reviewID := chi.URLParam(r, "review_id")

	rec, rv, ok := h.loadReview(w, r, recipeID, reviewID)
	if !ok {
		return
	}
	if d := reviewpolicy.CanLike(r, rv); d != nil {
		deny(w, d)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "like review")
	defer cancel()

	liked, err := h.Recipes.LikeReview(ctx, recipeID, reviewID, me.Username)
	switch {
	case errors.Is(err, recipestore.ErrAlreadyLiked):
		deny(w, reviewpolicy.DenyAlreadyLiked)
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		apierrors.NotFound(w, fmt.Sprintf(msgReviewNotFound, reviewID))
		return
	case err != nil:
		h.ErrLog.Log500(w, r, "like review failed", err)
		return
	}

	metrics.ReviewEvents.WithLabelValues("like").Inc()
	h.Notify.Liked(ctx, *rec, liked, me.Username)
	jsonutil.Write(w, http.StatusOK, liked)
}
