package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the authenticated caller injected into r.Context().
type SessionUser struct {
	ID       string
	Username string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// Username returns the caller's username, or "" for anonymous requests.
func Username(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return u.Username
	}
	return ""
}

// WithTestUser injects u into the request context. Tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer tokens                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// DefaultExpiry is the token lifetime when none is configured.
const DefaultExpiry = 30 * time.Minute

// CredentialsMessage is the detail for every token failure.
const CredentialsMessage = "Could not validate credentials"

const internalMessage = "Internal server error"

var (
	ErrNoSecret     = errors.New("jwt secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by every access token. Subject is the username.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserFetcher re-loads the token's user on each request so deleted
// accounts stop authenticating immediately. It returns (nil, nil) when the
// user no longer exists and an error only when the lookup itself failed.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*SessionUser, error)
}

// Manager issues and verifies HS256 bearer tokens.
type Manager struct {
	secret  []byte
	expiry  time.Duration
	fetcher UserFetcher
	log     *zap.Logger
	now     func() time.Time
}

// NewManager builds a Manager. expiry <= 0 means DefaultExpiry.
func NewManager(secret string, expiry time.Duration, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended", zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		log:    logger,
		now:    time.Now,
	}, nil
}

// SetUserFetcher enables the per-request user existence check.
func (m *Manager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// Expiry returns the configured token lifetime.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// IssueToken signs a token for the user and returns it with its expiry.
func (m *Manager) IssueToken(userID, username string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.expiry)
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies signature, algorithm and expiry.
func (m *Manager) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadUser authenticates the Authorization header when present.
// Requests without the header pass through anonymously; a malformed,
// expired or revoked token is rejected with 401.
func (m *Manager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(raw)
		if !ok {
			unauthorized(w)
			return
		}
		claims, err := m.ParseToken(token)
		if err != nil {
			m.log.Debug("rejected bearer token", zap.Error(err))
			unauthorized(w)
			return
		}

		u := &SessionUser{ID: claims.UserID, Username: claims.Username}
		if m.fetcher != nil {
			u, err = m.fetcher.FetchUser(r.Context(), claims.UserID)
			if err != nil {
				m.log.Error("load token user failed",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
				jsonutil.Write(w, http.StatusInternalServerError, map[string]string{"detail": internalMessage})
				return
			}
			if u == nil {
				unauthorized(w)
				return
			}
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	jsonutil.Write(w, http.StatusUnauthorized, map[string]string{"detail": CredentialsMessage})
}
