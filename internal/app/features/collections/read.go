// internal/app/features/collections/read.go
package collections

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/visibilitypolicy"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleGet returns one collection. 404 when it does not exist, 403 when
// its owner's privacy hides it from the caller.
//
// Route: GET /collection/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadVisible(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	jsonutil.Write(w, http.StatusOK, c)
}

// HandleListByUser returns every collection owned by username.
//
// Route: GET /collection/user/{username}
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user collections")
	defer cancel()

	owner, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, username))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "list user collections: load owner failed", err)
		return
	}
	if !visibilitypolicy.CanViewOwner(*owner, visibilitypolicy.Requester(r)) {
		apierrors.Forbidden(w, msgCannotViewUser)
		return
	}

	list, err := h.Collections.ListByUserID(ctx, owner.ID)
	if err != nil {
		h.ErrLog.Log500(w, r, "list user collections failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// HandleRecipes returns the recipes in a collection. Recipes that were
// deleted, or whose owners hide them from the caller, are left out.
//
// Route: GET /collection/{id}/recipes
func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadVisible(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list collection recipes")
	defer cancel()

	recipes, err := h.Recipes.ListByIDs(ctx, c.RecipeIDs)
	if err != nil {
		h.ErrLog.Log500(w, r, "list collection recipes failed", err)
		return
	}

	requester := visibilitypolicy.Requester(r)
	owners := map[string]*models.User{}
	out := make([]models.Recipe, 0, len(recipes))
	for _, rec := range recipes {
		owner, seen := owners[rec.UserID]
		if !seen {
			owner, err = h.owner(ctx, rec.UserID)
			if err != nil {
				h.ErrLog.Log500(w, r, "list collection recipes: load owner failed", err)
				return
			}
			owners[rec.UserID] = owner
		}
		if visibilitypolicy.CanViewRecipe(rec, owner, requester) {
			out = append(out, rec)
		}
	}
	jsonutil.Write(w, http.StatusOK, out)
}

// loadVisible loads collection id and applies the owner's visibility.
// It writes 404/403/500 itself and reports whether c is usable.
//
// A collection whose owner no longer exists is treated as public.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request, id string) (*models.Collection, bool) {
	c, ok := h.loadCollection(w, r, id)
	if !ok {
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load collection owner")
	defer cancel()

	owner, err := h.owner(ctx, c.UserID)
	if err != nil {
		h.ErrLog.Log500(w, r, "load collection owner failed", err)
		return nil, false
	}
	if owner != nil && !visibilitypolicy.CanViewOwner(*owner, visibilitypolicy.Requester(r)) {
		apierrors.Forbidden(w, msgCannotView)
		return nil, false
	}
	return c, true
}

// loadCollection writes 404/500 itself and reports whether c is usable.
func (h *Handler) loadCollection(w http.ResponseWriter, r *http.Request, id string) (*models.Collection, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load collection")
	defer cancel()

	c, err := h.Collections.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgCollectionNotFound, id))
		return nil, false
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "load collection failed", err)
		return nil, false
	}
	return c, true
}

// owner returns nil without error when the account is gone.
func (h *Handler) owner(ctx context.Context, userID string) (*models.User, error) {
	u, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return u, err
}
