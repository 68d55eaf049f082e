// internal/app/system/limits/limits.go
package limits

// Request body size limits. These keep a single request from exhausting
// memory or disk.
const (
	// DefaultMaxUploadMB bounds a multipart request when max_upload_mb is unset.
	DefaultMaxUploadMB = 10

	// MultipartMemory is how much of a multipart body is held in memory
	// before parts spill to temporary files.
	MultipartMemory = 8 << 20 // 8 MB

	// MaxGalleryImages caps the `images` files accepted in one recipe request.
	MaxGalleryImages = 10
)

// UploadBytes converts a megabyte setting to bytes, falling back to the default.
func UploadBytes(mb int) int64 {
	if mb <= 0 {
		mb = DefaultMaxUploadMB
	}
	return int64(mb) << 20
}
