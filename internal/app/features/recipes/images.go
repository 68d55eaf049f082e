package recipes

import (
	"context"
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
)

// uploads stores the `image` and `images` parts of a multipart request.
// Non-multipart requests carry no files.
func (h *Handler) uploads(ctx context.Context, r *http.Request) (main *string, gallery []string, err error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	if fh := formutil.File(r, "image"); fh != nil {
		url, err := h.Images.Upload(ctx, imagestore.PrefixRecipes, fh)
		if err != nil {
			return nil, nil, err
		}
		main = &url
	}
	for _, fh := range formutil.Files(r, "images") {
		url, err := h.Images.Upload(ctx, imagestore.PrefixRecipes, fh)
		if err != nil {
			return nil, nil, err
		}
		gallery = append(gallery, url)
	}
	return main, gallery, nil
}

func galleryFiles(r *http.Request) int {
	if r.MultipartForm == nil {
		return 0
	}
	return len(formutil.Files(r, "images"))
}
