// internal/app/features/users/update.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/userpolicy"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/authutil"
	"github.com/dalemusser/kasula/internal/app/system/formutil"
	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// updateInput is a partial profile. Username is accepted only so a
// changed value can be rejected explicitly.
type updateInput struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Bio            *string `json:"bio" validate:"omitempty,max=500" label:"Bio"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url,max=500" label:"Profile picture"`
	IsPrivate      *bool   `json:"is_private"`
}

// HandleUpdate applies a partial profile update to the caller's account.
//
// Route: PUT /user/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !userpolicy.CanModify(r, id) {
		apierrors.Forbidden(w, msgNotYourAccount)
		return
	}

	var in updateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	current, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update user: load failed", err)
		return
	}

	if in.Username != nil && normalize.Username(*in.Username) != current.Username {
		apierrors.BadRequest(w, msgUsernameFixed)
		return
	}

	upd := userstore.Update{
		Bio:            htmlsanitize.PlainTextPtr(in.Bio),
		ProfilePicture: in.ProfilePicture,
		IsPrivate:      in.IsPrivate,
	}

	if in.Email != nil {
		email := normalize.Email(*in.Email)
		if !inputval.IsValidEmail(email) {
			apierrors.BadRequest(w, msgInvalidEmail)
			return
		}
		if email != current.Email {
			taken, err := h.Users.EmailExistsForOther(ctx, email, id)
			if err != nil {
				h.ErrLog.Log500(w, r, "update user: email check failed", err)
				return
			}
			if taken {
				apierrors.BadRequest(w, msgAlreadyExists)
				return
			}
			upd.Email = &email
		}
	}

	var newHash string
	if in.Password != nil {
		if err := authutil.ValidatePassword(*in.Password); err != nil {
			apierrors.BadRequest(w, err.Error())
			return
		}
		if newHash, err = authutil.HashPassword(*in.Password); err != nil {
			h.ErrLog.Log500(w, r, "update user: hash password failed", err)
			return
		}
	}

	u, err := h.Users.Update(ctx, id, upd)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apierrors.BadRequest(w, msgAlreadyExists)
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update user failed", err)
		return
	}

	if newHash != "" {
		if err := h.Users.SetPassword(ctx, u.Email, newHash); err != nil {
			h.ErrLog.Log500(w, r, "update user: set password failed", err)
			return
		}
		h.Log.Info("password changed", zap.String("user_id", id))
	}

	jsonutil.Write(w, http.StatusOK, u)
}

// HandleUploadPicture stores a new profile picture for the caller.
// The multipart body carries a single `file` part.
//
// Route: PUT /user/{id}/picture
func (h *Handler) HandleUploadPicture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !userpolicy.CanModify(r, id) {
		apierrors.Forbidden(w, msgNotYourAccount)
		return
	}

	if err := formutil.ParseMultipart(w, r, h.maxUploadBytes()); err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}
	fh := formutil.File(r, "file")
	if fh == nil {
		apierrors.BadRequest(w, msgFileRequired)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "upload profile picture")
	defer cancel()

	url, err := h.Images.Upload(ctx, imagestore.PrefixProfiles, fh)
	if err != nil {
		h.ErrLog.Upload(w, r, err)
		return
	}

	u, err := h.Users.Update(ctx, id, userstore.Update{ProfilePicture: &url})
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "update profile picture failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, u)
}
