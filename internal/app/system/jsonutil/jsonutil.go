// internal/app/system/jsonutil/jsonutil.go
package jsonutil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by Decode when the request carried no body.
var ErrEmptyBody = errors.New("request body is empty")

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads a JSON request body into dst. Unknown fields are ignored.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	b, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	return DecodeString(string(b), dst)
}

// DecodeString parses a JSON document, such as one carried in a multipart form field.
func DecodeString(s string, dst any) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyBody
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
