// internal/app/features/collections/update.go
package collections

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/collectionpolicy"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleRename changes a collection's name.
//
// Route: PUT /collection/{id}
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := h.loadOwned(w, r, id)
	if !ok {
		return
	}

	var in renameInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	in.Name = cleanName(in.Name)
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "rename collection")
	defer cancel()

	updated, err := h.Collections.Rename(ctx, c.ID, in.Name)
	h.writeUpdated(w, r, id, updated, err)
}

// HandleAddRecipe adds an existing recipe to the collection. Adding a
// recipe that is already present leaves the collection unchanged.
//
// Route: PUT /collection/{id}/add_recipe/{recipe_id}
func (h *Handler) HandleAddRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipeID := chi.URLParam(r, "recipe_id")

	if _, ok := h.loadOwned(w, r, id); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add recipe to collection")
	defer cancel()

	exists, err := h.Recipes.Exists(ctx, recipeID)
	if err != nil {
		h.ErrLog.Log500(w, r, "add recipe: lookup failed", err)
		return
	}
	if !exists {
		apierrors.NotFound(w, fmt.Sprintf(msgRecipeNotFound, recipeID))
		return
	}

	updated, err := h.Collections.AddRecipe(ctx, id, recipeID)
	h.writeUpdated(w, r, id, updated, err)
}

// HandleRemoveRecipe drops a recipe from the collection.
//
// Route: PUT /collection/{id}/remove_recipe/{recipe_id}
func (h *Handler) HandleRemoveRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipeID := chi.URLParam(r, "recipe_id")

	if _, ok := h.loadOwned(w, r, id); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "remove recipe from collection")
	defer cancel()

	updated, err := h.Collections.RemoveRecipe(ctx, id, recipeID)
	h.writeUpdated(w, r, id, updated, err)
}

// loadOwned loads collection id and requires the caller to own it.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request, id string) (*models.Collection, bool) {
	c, ok := h.loadCollection(w, r, id)
	if !ok {
		return nil, false
	}
	if !collectionpolicy.CanModify(r, *c) {
		apierrors.Forbidden(w, msgNotOwner)
		return nil, false
	}
	return c, true
}

func (h *Handler) writeUpdated(w http.ResponseWriter, r *http.Request, id string, c *models.Collection, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgCollectionNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update collection failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, c)
}
