// internal/app/features/errors/upload.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
)

// Messages for rejected multipart uploads.
const (
	MsgInvalidBody      = "Invalid request body"
	MsgNotMultipart     = "Expected a multipart/form-data body"
	MsgInvalidForm      = "Malformed multipart form"
	MsgUploadTooLarge   = "Upload is too large"
	MsgUnsupportedImage = "Unsupported or corrupt image"
)

// Upload maps request document, multipart and image errors to 400/413
// and anything else to 500.
func (e *ErrorLogger) Upload(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, formutil.ErrBadDocument):
		BadRequest(w, MsgInvalidBody)
	case stderrors.Is(err, formutil.ErrNotMultipart):
		BadRequest(w, MsgNotMultipart)
	case stderrors.Is(err, formutil.ErrInvalidForm):
		BadRequest(w, MsgInvalidForm)
	case stderrors.Is(err, formutil.ErrTooLarge):
		Detail(w, http.StatusRequestEntityTooLarge, MsgUploadTooLarge)
	case stderrors.Is(err, imagestore.ErrUnsupportedImage):
		BadRequest(w, MsgUnsupportedImage)
	default:
		e.Log500(w, r, "upload failed", err)
	}
}
