// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net/http"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/go-chi/httprate"
)

// Message is the detail returned when a client is throttled.
const Message = "Too many attempts"

// PerIP allows limit requests per window from one client address. Excess
// requests get a JSON 429. limit <= 0 disables limiting.
func PerIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			jsonutil.Write(w, http.StatusTooManyRequests, map[string]string{"detail": Message})
		}),
	)
}
