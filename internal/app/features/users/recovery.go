// internal/app/features/users/recovery.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	recoverystore "github.com/dalemusser/kasula/internal/app/store/recovery"
	"github.com/dalemusser/kasula/internal/app/system/authutil"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/ratelimit"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type recoveryRequest struct {
	Email string `json:"email"`
}

type recoveryReset struct {
	Code        string `json:"code" validate:"required" label:"Code"`
	NewPassword string `json:"new_password" validate:"required" label:"New password"`
}

// HandleStartRecovery mails a one-time code to the account's email.
// The response is the same whether or not the account exists.
//
// Route: POST /user/password_recovery
func (h *Handler) HandleStartRecovery(w http.ResponseWriter, r *http.Request) {
	var in recoveryRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	email := normalize.Email(in.Email)
	if !inputval.IsValidEmail(email) {
		apierrors.BadRequest(w, msgInvalidEmail)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "start password recovery")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.Log.Info("password recovery for unknown email")
	case err != nil:
		h.ErrLog.Log500(w, r, "recovery: user lookup failed", err)
		return
	default:
		code, err := h.Recovery.Create(ctx, email)
		if err != nil {
			h.ErrLog.Log500(w, r, "recovery: create code failed", err)
			return
		}
		h.sendRecovery(r, *u, code)
	}

	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgRecoverySent})
}

func (h *Handler) sendRecovery(r *http.Request, u models.User, code string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "send recovery email")
	defer cancel()

	email := mailer.BuildRecoveryEmail(u.Email, mailer.RecoveryEmailData{
		SiteName:  h.Opts.SiteName,
		Username:  u.Username,
		Code:      code,
		ExpiresIn: h.Recovery.Expiry().String(),
	})
	if err := h.Mail.Send(ctx, email); err != nil {
		metrics.EmailsSent.WithLabelValues("recovery", "failed").Inc()
		h.Log.Warn("recovery email failed", zap.String("user_id", u.ID), zap.Error(err))
		return
	}
	metrics.EmailsSent.WithLabelValues("recovery", "sent").Inc()
}

// HandleCompleteRecovery checks the code and sets the new password.
//
// Route: PUT /user/password_recovery/{email}
func (h *Handler) HandleCompleteRecovery(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(chi.URLParam(r, "email"))

	var in recoveryReset
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}
	if err := authutil.ValidatePassword(in.NewPassword); err != nil {
		apierrors.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "complete password recovery")
	defer cancel()

	switch err := h.Recovery.Verify(ctx, email, in.Code); {
	case errors.Is(err, recoverystore.ErrTooManyAttempts):
		apierrors.TooManyRequests(w, ratelimit.Message)
		return
	case errors.Is(err, recoverystore.ErrNotFound), errors.Is(err, recoverystore.ErrInvalidCode):
		apierrors.BadRequest(w, msgInvalidCode)
		return
	case err != nil:
		h.ErrLog.Log500(w, r, "recovery: verify failed", err)
		return
	}

	hash, err := authutil.HashPassword(in.NewPassword)
	if err != nil {
		h.ErrLog.Log500(w, r, "recovery: hash password failed", err)
		return
	}
	if err := h.Users.SetPassword(ctx, email, hash); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, email))
			return
		}
		h.ErrLog.Log500(w, r, "recovery: set password failed", err)
		return
	}

	h.Log.Info("password reset via recovery code")
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgPasswordReset})
}
