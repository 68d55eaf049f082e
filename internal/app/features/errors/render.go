// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
)

// body is the error envelope every endpoint returns.
type body struct {
	Detail string `json:"detail"`
}

// Detail writes {"detail": msg} with the given status.
func Detail(w http.ResponseWriter, status int, msg string) {
	jsonutil.Write(w, status, body{Detail: msg})
}

// BadRequest covers validation failures and duplicate-constraint violations.
func BadRequest(w http.ResponseWriter, msg string) {
	Detail(w, http.StatusBadRequest, msg)
}

// Unauthorized is for missing, invalid or expired credentials.
func Unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Detail(w, http.StatusUnauthorized, msg)
}

// Forbidden is for an identified caller who may not act on the resource.
func Forbidden(w http.ResponseWriter, msg string) {
	Detail(w, http.StatusForbidden, msg)
}

// NotFound is for a resource that does not exist.
func NotFound(w http.ResponseWriter, msg string) {
	Detail(w, http.StatusNotFound, msg)
}

// TooManyRequests is for throttled or exhausted attempts.
func TooManyRequests(w http.ResponseWriter, msg string) {
	Detail(w, http.StatusTooManyRequests, msg)
}

// Internal writes the generic 500 body. Prefer ErrorLogger.Log500.
func Internal(w http.ResponseWriter) {
	Detail(w, http.StatusInternalServerError, InternalMessage)
}
