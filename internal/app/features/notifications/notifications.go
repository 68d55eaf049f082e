// internal/app/features/notifications/notifications.go
package notifications

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/userpolicy"
	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createInput struct {
	Type  string  `json:"type" validate:"required,max=30" label:"Type"`
	Text  string  `json:"text" validate:"required,max=500" label:"Text"`
	Link  string  `json:"link" validate:"max=500" label:"Link"`
	Image *string `json:"image" validate:"omitempty,url,max=500" label:"Image"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,notifstatus" label:"Status"`
}

// HandleCreate appends an unread notification to username's inbox. Any
// signed-in user may notify any existing user.
//
// Route: POST /notification/{username}
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))

	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	in.Type = normalize.Status(in.Type)
	in.Text = htmlsanitize.PlainText(in.Text)
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create notification")
	defer cancel()

	n, err := h.Users.AddNotification(ctx, username, models.Notification{
		Type:  in.Type,
		Text:  in.Text,
		Link:  in.Link,
		Image: in.Image,
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, username))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "create notification failed", err)
		return
	}

	h.Log.Debug("notification created", zap.String("username", username), zap.String("type", n.Type))
	jsonutil.Write(w, http.StatusCreated, n)
}

// HandleList returns the caller's own notifications. Deleted ones are
// hidden unless ?status=deleted asks for them.
//
// Route: GET /notification/{username}
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))
	if !userpolicy.IsSelf(r, username) {
		apierrors.Forbidden(w, msgNotYourInbox)
		return
	}

	status := normalize.Status(query.Get(r, "status"))
	if status != "" && !models.IsValidNotificationStatus(status) {
		apierrors.BadRequest(w, msgInvalidStatus)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list notifications")
	defer cancel()

	list, err := h.Users.ListNotifications(ctx, username, status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, username))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "list notifications failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// HandleSetStatus marks one of the caller's notifications unread, read or
// deleted.
//
// Route: PUT /notification/{username}/{notification_id}
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))
	id := chi.URLParam(r, "notification_id")
	if !userpolicy.IsSelf(r, username) {
		apierrors.Forbidden(w, msgNotYourInbox)
		return
	}

	var in statusInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	in.Status = normalize.Status(in.Status)
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, msgInvalidStatus)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set notification status")
	defer cancel()

	n, err := h.Users.SetNotificationStatus(ctx, username, id, in.Status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgNotificationNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "set notification status failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, n)
}
