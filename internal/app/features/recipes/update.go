// internal/app/features/recipes/update.go
package recipes

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/recipepolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/limits"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate applies a partial update. A multipart body may omit the
// `recipe` field and send only files: `image` replaces the main image and
// `images` are appended to the gallery.
//
// Route: PUT /recipe/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, ok := h.loadRecipe(w, r, id)
	if !ok {
		return
	}
	if !recipepolicy.CanModify(r, *rec) {
		apierrors.Forbidden(w, msgNotOwner)
		return
	}

	var in recipeUpdate
	present, err := formutil.ReadDocument(w, r, "recipe", h.maxUploadBytes(), &in)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	in.clean()
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}
	files := galleryFiles(r)
	if !present && files == 0 && formutil.File(r, "image") == nil {
		apierrors.BadRequest(w, msgNoUpdateContent)
		return
	}
	if len(rec.Images)+files > limits.MaxGalleryImages {
		apierrors.BadRequest(w, msgTooManyImages)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update recipe")
	defer cancel()

	main, gallery, err := h.uploads(ctx, r)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}

	upd := recipestore.Update{
		Name:         in.Name,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		CookingTime:  in.CookingTime,
		Difficulty:   in.Difficulty,
		Image:        in.Image,
		AddImages:    gallery,
	}
	if main != nil {
		upd.Image = main
	}

	updated, err := h.Recipes.Update(ctx, id, upd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgRecipeNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update recipe failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, updated)
}
