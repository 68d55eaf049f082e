package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local writes objects beneath Root and serves them from URLPrefix.
type Local struct {
	Root      string
	URLPrefix string
}

// NewLocal creates root if needed.
func NewLocal(root, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{Root: root, URLPrefix: urlPrefix}, nil
}

// Save implements Store.
func (l *Local) Save(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := filepath.Join(l.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return joinURL(l.URLPrefix, key), nil
}
