// internal/app/features/users/routes.go
package users

import (
	"time"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /user. Static segments are registered alongside
// /{id}; chi matches them first.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	limited := ratelimit.PerIP(h.Opts.LoginRateLimit, time.Minute)

	r.Post("/", h.HandleRegister)
	r.Get("/", h.HandleList)
	r.Get("/check_username/{username}", h.HandleCheckUsername)
	r.Get("/check_email/{email}", h.HandleCheckEmail)
	r.Get("/followers/{username}", h.HandleFollowers)
	r.Get("/following/{username}", h.HandleFollowing)
	r.With(limited).Post("/token", h.HandleToken)
	r.With(limited).Post("/password_recovery", h.HandleStartRecovery)
	r.With(limited).Put("/password_recovery/{email}", h.HandleCompleteRecovery)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/me", h.HandleMe)
		pr.Put("/follow/{username}", h.HandleFollow)
		pr.Delete("/follow/{username}", h.HandleUnfollow)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Put("/{id}/picture", h.HandleUploadPicture)
		pr.Delete("/{id}", h.HandleDelete)
	})

	r.Get("/{id}", h.HandleGet)
	return r
}
