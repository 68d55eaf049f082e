package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret-must-be-32-chars-long"

func newTestManager(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(testSecret, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

type stubFetcher map[string]*auth.SessionUser

func (f stubFetcher) FetchUser(_ context.Context, id string) (*auth.SessionUser, error) {
	return f[id], nil
}

type failingFetcher struct{}

func (failingFetcher) FetchUser(context.Context, string) (*auth.SessionUser, error) {
	return nil, errors.New("server selection timeout")
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.CurrentUser(r); ok {
			w.Write([]byte(u.Username))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestNewManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewManager("", time.Hour, zap.NewNop()); !errors.Is(err, auth.ErrNoSecret) {
		t.Errorf("expected ErrNoSecret, got %v", err)
	}
}

func TestNewManager_DefaultExpiry(t *testing.T) {
	m, err := auth.NewManager(testSecret, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if m.Expiry() != auth.DefaultExpiry {
		t.Errorf("expected %v, got %v", auth.DefaultExpiry, m.Expiry())
	}
}

func TestIssueAndParseToken(t *testing.T) {
	m := newTestManager(t)

	token, exp, err := m.IssueToken("user-1", "alice")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("expected expiry in the future")
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user_id: got %q", claims.UserID)
	}
	if claims.Username != "alice" || claims.Subject != "alice" {
		t.Errorf("username/sub: got %q/%q", claims.Username, claims.Subject)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m, err := auth.NewManager(testSecret, time.Millisecond, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	token, _, err := m.IssueToken("user-1", "alice")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	if _, err := m.ParseToken(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	other, err := auth.NewManager("another-secret-that-is-32-chars-long!", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	token, _, _ := other.IssueToken("user-1", "alice")

	if _, err := newTestManager(t).ParseToken(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_RejectsNoneAlg(t *testing.T) {
	claims := &auth.Claims{
		UserID:   "user-1",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := newTestManager(t).ParseToken(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}

func TestLoadUser_NoHeader_Anonymous(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()
	m.LoadUser(echoUser()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Errorf("expected anonymous pass-through, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestLoadUser_ValidToken(t *testing.T) {
	m := newTestManager(t)
	token, _, _ := m.IssueToken("user-1", "alice")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.LoadUser(echoUser()).ServeHTTP(rec, req)

	if rec.Body.String() != "alice" {
		t.Errorf("expected alice, got %q", rec.Body.String())
	}
}

func TestLoadUser_BadHeaders(t *testing.T) {
	m := newTestManager(t)
	headers := []string{"Bearer", "Basic abc", "Bearer not-a-jwt", "token"}

	for _, h := range headers {
		t.Run(h, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", h)
			rec := httptest.NewRecorder()
			m.LoadUser(echoUser()).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("expected WWW-Authenticate: Bearer")
			}
		})
	}
}

func TestLoadUser_DeletedUser(t *testing.T) {
	m := newTestManager(t)
	m.SetUserFetcher(stubFetcher{"user-2": {ID: "user-2", Username: "bob"}})
	token, _, _ := m.IssueToken("user-1", "alice")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.LoadUser(echoUser()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted user, got %d", rec.Code)
	}
}

func TestLoadUser_StoreFailure(t *testing.T) {
	m := newTestManager(t)
	m.SetUserFetcher(failingFetcher{})
	token, _, _ := m.IssueToken("user-1", "alice")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.LoadUser(echoUser()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 when the user lookup fails, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "server selection") {
		t.Errorf("driver error leaked: %s", rec.Body.String())
	}
}

func TestRequireSignedIn(t *testing.T) {
	h := auth.RequireSignedIn(echoUser())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "u", Username: "carol"})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "carol" {
		t.Errorf("expected carol, got %d %q", rec.Code, rec.Body.String())
	}
}
