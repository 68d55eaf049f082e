// internal/app/features/recipes/delete.go
package recipes

import (
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/recipepolicy"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete removes the recipe with its reviews and drops it from
// every collection.
//
// Route: DELETE /recipe/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, ok := h.loadRecipe(w, r, id)
	if !ok {
		return
	}
	if !recipepolicy.CanModify(r, *rec) {
		apierrors.Forbidden(w, msgNotOwner)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete recipe")
	defer cancel()

	if _, err := h.Recipes.Delete(ctx, id); err != nil {
		h.ErrLog.Log500(w, r, "delete recipe failed", err)
		return
	}
	if _, err := h.Collections.PurgeRecipe(ctx, id); err != nil {
		h.Log.Warn("delete recipe: collection cleanup failed", zap.String("recipe_id", id), zap.Error(err))
	}

	h.Log.Info("recipe deleted", zap.String("recipe_id", id))
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgRecipeDeleted})
}
