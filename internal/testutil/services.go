package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"go.uber.org/zap"
)

// TestJWTSecret signs tokens in handler tests.
const TestJWTSecret = "test-jwt-secret-must-be-32-chars-long"

// NewTokenManager returns an auth.Manager with a one hour expiry.
func NewTokenManager(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(TestJWTSecret, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("create token manager: %v", err)
	}
	return m
}

// NewLocalUploader stores images in a per-test temp dir served from /uploads.
func NewLocalUploader(t *testing.T) *imagestore.Uploader {
	t.Helper()
	store, err := imagestore.NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("create local store: %v", err)
	}
	return imagestore.NewUploader(store, 0, zap.NewNop())
}

// MailRecorder is a mailer.Sender that keeps every message.
type MailRecorder struct {
	mu   sync.Mutex
	sent []mailer.Email
	Err  error
}

// Send records e, then returns Err.
func (m *MailRecorder) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return m.Err
}

// Sent returns a copy of the recorded messages.
func (m *MailRecorder) Sent() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.sent...)
}
