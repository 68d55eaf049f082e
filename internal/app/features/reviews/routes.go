// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /review.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{recipe_id}", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/{recipe_id}", h.HandleCreate)
		pr.Put("/{recipe_id}/{review_id}", h.HandleUpdate)
		pr.Delete("/{recipe_id}/{review_id}", h.HandleDelete)
		pr.Patch("/like/{recipe_id}/{review_id}", h.HandleLike)
	})
	return r
}
