// internal/app/features/reviews/update.go
package reviews

import (
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate edits the caller's review. The rating is rounded to one
// decimal and the recipe's average is refreshed.
//
// Route: PUT /review/{recipe_id}/{review_id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in reviewInput
	if _, err := formutil.ReadDocument(w, r, "review", h.maxUploadBytes(), &in); err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	if err := in.clean(); err != nil {
		apierrors.BadRequest(w, msgRatingRange)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update review")
	defer cancel()

	image, err := h.upload(ctx, r)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}

	updated, err := h.Recipes.UpdateReview(ctx, recipeID, reviewID, recipestore.ReviewUpdate{
		Rating: in.Rating,
		Body:   in.Body,
		Image:  image,
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.recipeNotFound(w, recipeID)
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update review failed", err)
		return
	}
	if !h.recompute(w, r, recipeID) {
		return
	}

	metrics.ReviewEvents.WithLabelValues("update").Inc()
	jsonutil.Write(w, http.StatusOK, updated)
}
