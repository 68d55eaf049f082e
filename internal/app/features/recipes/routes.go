// internal/app/features/recipes/routes.go
package recipes

import (
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /recipe. Reads are open to anonymous callers and
// filtered by visibility.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Get("/user/{username}", h.HandleListByUser)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}
