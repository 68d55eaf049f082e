// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /notification. Every route requires sign-in.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/{username}", h.HandleCreate)
	r.Get("/{username}", h.HandleList)
	r.Put("/{username}/{notification_id}", h.HandleSetStatus)
	return r
}
