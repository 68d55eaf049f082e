// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger writes 500 responses and logs the underlying error with
// request context. Driver and I/O errors never reach the response body.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// InternalMessage is the only detail clients see for unexpected failures.
const InternalMessage = "Internal server error"

// Log500 logs err and responds 500 with a generic detail.
func (e *ErrorLogger) Log500(w http.ResponseWriter, r *http.Request, msg string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("user_id", u.ID))
	}
	e.Log.Error(msg, fields...)
	Internal(w)
}

// Handler serves JSON bodies for unmatched routes and methods.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "Not Found")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
