// internal/app/features/reviews/read.go
package reviews

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleList returns a recipe's reviews.
//
// NOTE: reviews are readable by anyone, even when the recipe itself is
// hidden by its owner's privacy. Existing clients rely on this.
//
// Route: GET /review/{recipe_id}
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecipe(w, r, chi.URLParam(r, "recipe_id"))
	if !ok {
		return
	}
	list := rec.Reviews
	if list == nil {
		list = []models.Review{}
	}
	jsonutil.Write(w, http.StatusOK, list)
}
