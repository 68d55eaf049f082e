// Package formutil reads the multipart requests used by endpoints that
// accept a JSON document together with image files.
//
// The JSON travels in a named text field (for example `recipe`) and the
// images in file fields. Example usage:
//
//	var in recipeInput
//	present, err := formutil.ReadDocument(w, r, "recipe", maxBytes, &in)
//	if err != nil {
//		h.ErrLog.Upload(w, r, err)
//		return
//	}
//	main := formutil.File(r, "image")
//	gallery := formutil.Files(r, "images")
package formutil

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/limits"
)

var (
	// ErrNotMultipart is returned when the request is not multipart/form-data.
	ErrNotMultipart = errors.New("expected multipart/form-data")
	// ErrTooLarge is returned when the body exceeds the upload limit.
	ErrTooLarge = errors.New("request body too large")
	// ErrInvalidForm wraps multipart parse failures other than size.
	ErrInvalidForm = errors.New("invalid multipart form")
	// ErrBadDocument wraps JSON decode failures of the request document.
	ErrBadDocument = errors.New("invalid JSON document")
)

// IsMultipart reports whether r carries multipart/form-data.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// ParseMultipart bounds the body to maxBytes and parses the form.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if !IsMultipart(r) {
		return ErrNotMultipart
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(limits.MultipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return ErrTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// JSONField decodes the JSON text in field name into dst. present is
// false when the field is absent or blank, in which case dst is untouched.
func JSONField(r *http.Request, name string, dst any) (present bool, err error) {
	if r.MultipartForm == nil {
		return false, nil
	}
	vals := r.MultipartForm.Value[name]
	if len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
		return false, nil
	}
	if err := jsonutil.DecodeString(vals[0], dst); err != nil {
		return true, fmt.Errorf("%s: %w", name, err)
	}
	return true, nil
}

// ReadDocument decodes the request's JSON document into dst. A plain
// request carries it as the whole body; a multipart request carries it in
// the text field named field, and present is false when that field is
// missing.
func ReadDocument(w http.ResponseWriter, r *http.Request, field string, maxBytes int64, dst any) (present bool, err error) {
	if !IsMultipart(r) {
		if err := jsonutil.Decode(r, dst); err != nil {
			return true, fmt.Errorf("%w: %v", ErrBadDocument, err)
		}
		return true, nil
	}
	if err := ParseMultipart(w, r, maxBytes); err != nil {
		return false, err
	}
	present, err = JSONField(r, field, dst)
	if err != nil {
		return present, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	return present, nil
}

// File returns the first file in field name, or nil.
func File(r *http.Request, name string) *multipart.FileHeader {
	files := Files(r, name)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// Files returns the non-empty files in field name.
func Files(r *http.Request, name string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	var out []*multipart.FileHeader
	for _, fh := range r.MultipartForm.File[name] {
		if fh != nil && fh.Size > 0 {
			out = append(out, fh)
		}
	}
	return out
}
