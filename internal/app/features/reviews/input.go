// internal/app/features/reviews/input.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/rating"
)

// reviewInput is the body for create (all fields) and update (partial).
type reviewInput struct {
	Rating *float64 `json:"rating"`
	Body   *string  `json:"body" validate:"omitempty,max=5000" label:"Body"`
}

var errRatingRange = errors.New("rating out of range")

// clean sanitizes the body and rounds the rating to one decimal.
func (in *reviewInput) clean() error {
	if in.Body != nil {
		b := htmlsanitize.PlainText(*in.Body)
		in.Body = &b
	}
	if in.Rating != nil {
		if !rating.InRange(*in.Rating) {
			return errRatingRange
		}
		v := rating.Round1(*in.Rating)
		in.Rating = &v
	}
	return nil
}

// upload stores the optional `file` part and returns its URL.
func (h *Handler) upload(ctx context.Context, r *http.Request) (*string, error) {
	fh := formutil.File(r, "file")
	if fh == nil {
		return nil, nil
	}
	url, err := h.Images.Upload(ctx, imagestore.PrefixReviews, fh)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
