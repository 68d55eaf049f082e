package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/recipe/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipe/{id}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/recipe/abc-123", nil))
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipe/{id}", "418"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	LoginAttempts.WithLabelValues("success").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "kasula_login_attempts_total") {
		t.Error("expected login counter in exposition")
	}
}
