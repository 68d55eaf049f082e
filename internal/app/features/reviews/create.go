// internal/app/features/reviews/create.go
package reviews

import (
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate adds the caller's review to a recipe and refreshes the
// recipe's average rating. The body is JSON or multipart with the review
// in `review` and an optional image in `file`.
//
// Route: POST /review/{recipe_id}
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)
	recipeID := chi.URLParam(r, "recipe_id")

	var in reviewInput
	present, err := formutil.ReadDocument(w, r, "review", h.maxUploadBytes(), &in)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	if !present {
		apierrors.BadRequest(w, msgReviewRequired)
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create review")
	defer cancel()

	rec, ok := h.loadRecipe(w, r, recipeID)
	if !ok {
		return
	}
	owner, err := h.Users.GetByID(ctx, rec.UserID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.Log500(w, r, "create review: load owner failed", err)
		return
	}
	if d := reviewpolicy.CanCreate(r, *rec, owner); d != nil {
		deny(w, d)
		return
	}

	image, err := h.upload(ctx, r)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}

	rv := models.Review{
		UserID:   me.ID,
		Username: me.Username,
		Rating:   in.Rating,
		Image:    image,
	}
	if in.Body != nil {
		rv.Body = *in.Body
	}

	rv, err = h.Recipes.AddReview(ctx, recipeID, rv)
	switch {
	case errors.Is(err, recipestore.ErrDuplicateReview):
		deny(w, reviewpolicy.DenyDuplicate)
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		h.recipeNotFound(w, recipeID)
		return
	case err != nil:
		h.ErrLog.Log500(w, r, "create review failed", err)
		return
	}
	if !h.recompute(w, r, recipeID) {
		return
	}

	metrics.ReviewEvents.WithLabelValues("create").Inc()
	h.Notify.Reviewed(ctx, *rec, me.Username)
	h.Log.Info("review created",
		zap.String("recipe_id", recipeID),
		zap.String("review_id", rv.ID),
		zap.String("user_id", me.ID))

	jsonutil.Write(w, http.StatusCreated, rv)
}
