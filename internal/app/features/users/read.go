// internal/app/features/users/read.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleList returns up to userstore.DefaultListLimit users.
//
// Route: GET /user/
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	list, err := h.Users.List(ctx, userstore.DefaultListLimit)
	if err != nil {
		h.ErrLog.Log500(w, r, "list users failed", err)
		return
	}
	if list == nil {
		list = []models.User{}
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// HandleMe returns the signed-in user.
//
// Route: GET /user/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)
	h.writeUser(w, r, me.ID)
}

// HandleGet returns one user by id.
//
// Route: GET /user/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) writeUser(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "get user failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, u)
}

type availability struct {
	Available bool `json:"available"`
}

// HandleCheckUsername reports whether a username is free.
//
// Route: GET /user/check_username/{username}
func (h *Handler) HandleCheckUsername(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check username")
	defer cancel()

	exists, err := h.Users.UsernameExists(ctx, username)
	if err != nil {
		h.ErrLog.Log500(w, r, "check username failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, availability{Available: !exists})
}

// HandleCheckEmail reports whether an email is free.
//
// Route: GET /user/check_email/{email}
func (h *Handler) HandleCheckEmail(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(chi.URLParam(r, "email"))
	if !inputval.IsValidEmail(email) {
		apierrors.BadRequest(w, msgInvalidEmail)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check email")
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, email)
	if err != nil {
		h.ErrLog.Log500(w, r, "check email failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, availability{Available: !exists})
}
