// Package imagestore normalises uploaded images and hands them to a storage
// backend (local disk or S3), returning the public URL.
package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Key prefixes by owner kind.
const (
	PrefixRecipes  = "recipes"
	PrefixReviews  = "reviews"
	PrefixProfiles = "profiles"
)

// DefaultMaxDimension bounds the longest edge of stored images.
const DefaultMaxDimension = 1600

// ErrUnsupportedImage is returned for uploads that do not decode as an image.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// Store persists an object under key and returns its public URL.
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// Uploader processes images and saves them to a Store.
type Uploader struct {
	Store        Store
	MaxDimension int
	Log          *zap.Logger
}

// NewUploader wraps store. maxDim <= 0 means DefaultMaxDimension.
func NewUploader(store Store, maxDim int, logger *zap.Logger) *Uploader {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Uploader{Store: store, MaxDimension: maxDim, Log: logger}
}

// Upload stores a multipart file under prefix.
func (u *Uploader) Upload(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return u.UploadReader(ctx, prefix, fh.Filename, f)
}

// UploadReader stores the image read from r under prefix.
func (u *Uploader) UploadReader(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	data, contentType, ext, err := Process(r, filename, u.MaxDimension)
	if err != nil {
		return "", err
	}
	key := path.Join(prefix, uuid.NewString()+ext)
	url, err := u.Store.Save(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("save %s: %w", key, err)
	}
	u.Log.Debug("image stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}

// Process decodes, auto-orients and shrinks an image to fit within
// maxDim x maxDim. PNG input stays PNG (keeps transparency); anything
// else is re-encoded as JPEG.
func Process(r io.Reader, filename string, maxDim int) ([]byte, string, string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", "", ErrUnsupportedImage
	}

	b := img.Bounds()
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	format, contentType, ext := imaging.JPEG, "image/jpeg", ".jpg"
	if f, err := imaging.FormatFromFilename(filename); err == nil && f == imaging.PNG {
		format, contentType, ext = imaging.PNG, "image/png", ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), contentType, ext, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
