// internal/app/features/users/token.go
package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/system/authutil"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HandleToken exchanges username (or email) and password for a bearer token.
// The body is an OAuth2 password-grant form. Unknown login and wrong
// password produce the same 401.
//
// Route: POST /user/token
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	login := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if login == "" || password == "" {
		apierrors.BadRequest(w, msgMissingLogin)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "token lookup")
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, login)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.Log500(w, r, "token: user lookup failed", err)
		return
	}
	if u == nil || !authutil.CheckPassword(password, u.HashedPassword) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		h.Log.Info("login failed", zap.String("login", login))
		apierrors.Unauthorized(w, msgBadCredentials)
		return
	}

	token, exp, err := h.Tokens.IssueToken(u.ID, u.Username)
	if err != nil {
		h.ErrLog.Log500(w, r, "token: sign failed", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	w.Header().Set("Cache-Control", "no-store")
	jsonutil.Write(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   exp,
	})
}
