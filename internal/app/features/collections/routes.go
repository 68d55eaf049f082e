// internal/app/features/collections/routes.go
package collections

import (
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /collection.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/user/{username}", h.HandleListByUser)
	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/recipes", h.HandleRecipes)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleRename)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Put("/{id}/add_recipe/{recipe_id}", h.HandleAddRecipe)
		pr.Put("/{id}/remove_recipe/{recipe_id}", h.HandleRemoveRecipe)
	})
	return r
}
