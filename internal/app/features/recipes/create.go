// internal/app/features/recipes/create.go
package recipes

import (
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/limits"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate stores a new recipe owned by the caller. The body is either
// JSON or multipart with the document in `recipe`, an optional main
// `image` and repeated `images` gallery files.
//
// is_public is copied from the owner's privacy at this moment and is not
// updated when the owner later changes it.
//
// Route: POST /recipe/
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)

	var in recipeInput
	present, err := formutil.ReadDocument(w, r, "recipe", h.maxUploadBytes(), &in)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	if !present {
		apierrors.BadRequest(w, msgRecipeRequired)
		return
	}
	in.clean()
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}
	if len(in.Images)+galleryFiles(r) > limits.MaxGalleryImages {
		apierrors.BadRequest(w, msgTooManyImages)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create recipe")
	defer cancel()

	owner, err := h.Users.GetByID(ctx, me.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.Unauthorized(w, auth.CredentialsMessage)
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "create recipe: load owner failed", err)
		return
	}

	main, gallery, err := h.uploads(ctx, r)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	image := in.Image
	if main != nil {
		image = main
	}

	rec, err := h.Recipes.Create(ctx, models.Recipe{
		Name:         in.Name,
		UserID:       owner.ID,
		Username:     owner.Username,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		CookingTime:  in.CookingTime,
		Difficulty:   in.Difficulty,
		Image:        image,
		Images:       append(in.Images, gallery...),
		IsPublic:     !owner.IsPrivate,
	})
	if err != nil {
		h.ErrLog.Log500(w, r, "create recipe failed", err)
		return
	}

	h.Log.Info("recipe created", zap.String("recipe_id", rec.ID), zap.String("user_id", owner.ID))
	jsonutil.Write(w, http.StatusCreated, rec)
}
