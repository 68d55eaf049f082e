// internal/app/features/users/register.go
package users

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/authutil"
	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Username       string  `json:"username" validate:"required,username" label:"Username"`
	Email          string  `json:"email" validate:"required" label:"Email"`
	Password       string  `json:"password" validate:"required" label:"Password"`
	Bio            *string `json:"bio" validate:"omitempty,max=500" label:"Bio"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url,max=500" label:"Profile picture"`
	IsPrivate      bool    `json:"is_private"`
}

// HandleRegister creates an account and sends the welcome email.
//
// Route: POST /user/
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	in.Username = normalize.Username(in.Username)
	in.Email = normalize.Email(in.Email)

	if !inputval.IsValidEmail(in.Email) {
		apierrors.BadRequest(w, msgInvalidEmail)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		apierrors.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register user")
	defer cancel()

	taken, err := h.taken(ctx, in.Username, in.Email)
	if err != nil {
		h.ErrLog.Log500(w, r, "register: uniqueness check failed", err)
		return
	}
	if taken {
		apierrors.BadRequest(w, msgAlreadyExists)
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.ErrLog.Log500(w, r, "register: hash password failed", err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		Bio:            htmlsanitize.PlainTextPtr(in.Bio),
		ProfilePicture: in.ProfilePicture,
		IsPrivate:      in.IsPrivate,
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, userstore.ErrDuplicateUsername) || errors.Is(err, userstore.ErrDuplicateEmail) {
			apierrors.BadRequest(w, msgAlreadyExists)
			return
		}
		h.ErrLog.Log500(w, r, "register: insert failed", err)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	h.sendWelcome(r.Context(), u)

	jsonutil.Write(w, http.StatusCreated, u)
}

func (h *Handler) taken(ctx context.Context, username, email string) (bool, error) {
	if exists, err := h.Users.UsernameExists(ctx, username); err != nil || exists {
		return exists, err
	}
	return h.Users.EmailExists(ctx, email)
}

// sendWelcome is best effort; the account already exists.
func (h *Handler) sendWelcome(parent context.Context, u models.User) {
	ctx, cancel := timeouts.WithTimeout(parent, timeouts.Medium(), h.Log, "send welcome email")
	defer cancel()

	email := mailer.BuildWelcomeEmail(u.Email, mailer.WelcomeEmailData{
		SiteName: h.Opts.SiteName,
		Username: u.Username,
		BaseURL:  h.Opts.BaseURL,
	})
	if err := h.Mail.Send(ctx, email); err != nil {
		metrics.EmailsSent.WithLabelValues("welcome", "failed").Inc()
		h.Log.Warn("welcome email failed", zap.String("user_id", u.ID), zap.Error(err))
		return
	}
	metrics.EmailsSent.WithLabelValues("welcome", "sent").Inc()
}
