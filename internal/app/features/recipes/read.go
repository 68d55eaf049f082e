// internal/app/features/recipes/read.go
package recipes

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/visibilitypolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/paging"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleList returns a page of recipes the caller may see.
// Query: search, sort (newest|oldest|rating|name), limit, offset.
//
// Route: GET /recipe/
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list recipes")
	defer cancel()

	list, err := h.Recipes.ListVisible(ctx, recipestore.ListQuery{
		Requester: visibilitypolicy.Requester(r),
		Search:    query.Get(r, "search"),
		Page:      paging.Parse(r),
	})
	if err != nil {
		h.ErrLog.Log500(w, r, "list recipes failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// HandleGet returns one recipe. 404 when it does not exist, 403 when the
// owner is private and the caller is neither the owner nor a follower.
//
// Route: GET /recipe/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get recipe")
	defer cancel()

	rec, ok := h.loadRecipe(w, r, id)
	if !ok {
		return
	}
	owner, err := h.Users.GetByID(ctx, rec.UserID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.Log500(w, r, "get recipe: load owner failed", err)
		return
	}
	if !visibilitypolicy.CanViewRecipe(*rec, owner, visibilitypolicy.Requester(r)) {
		apierrors.Forbidden(w, msgCannotView)
		return
	}
	jsonutil.Write(w, http.StatusOK, rec)
}

// HandleListByUser returns a page of one user's recipes, subject to the
// user's privacy.
//
// Route: GET /recipe/user/{username}
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user recipes")
	defer cancel()

	owner, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, username))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "list user recipes: load owner failed", err)
		return
	}
	if !visibilitypolicy.CanViewOwner(*owner, visibilitypolicy.Requester(r)) {
		apierrors.Forbidden(w, msgCannotViewUser)
		return
	}

	list, err := h.Recipes.ListByUserID(ctx, owner.ID, paging.Parse(r))
	if err != nil {
		h.ErrLog.Log500(w, r, "list user recipes failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// loadRecipe writes 404/500 itself and reports whether rec is usable.
func (h *Handler) loadRecipe(w http.ResponseWriter, r *http.Request, id string) (*models.Recipe, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load recipe")
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgRecipeNotFound, id))
		return nil, false
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "load recipe failed", err)
		return nil, false
	}
	return rec, true
}
