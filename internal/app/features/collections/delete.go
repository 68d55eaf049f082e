// internal/app/features/collections/delete.go
package collections

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete removes a collection. The recipes in it are untouched.
//
// Route: DELETE /collection/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.loadOwned(w, r, id); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete collection")
	defer cancel()

	if _, err := h.Collections.Delete(ctx, id); err != nil {
		h.ErrLog.Log500(w, r, "delete collection failed", err)
		return
	}

	h.Log.Info("collection deleted", zap.String("collection_id", id))
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgCollectionDeleted})
}
