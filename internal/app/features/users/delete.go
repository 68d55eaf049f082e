// internal/app/features/users/delete.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/userpolicy"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete removes the caller's account and any pending recovery.
// Recipes and collections the user owns are kept.
//
// Route: DELETE /user/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !userpolicy.CanModify(r, id) {
		apierrors.Forbidden(w, msgNotYourAccount)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete user")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, id))
		return
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "delete user: load failed", err)
		return
	}

	if _, err := h.Users.Delete(ctx, id); err != nil {
		h.ErrLog.Log500(w, r, "delete user failed", err)
		return
	}
	if err := h.Recovery.DeleteByEmail(ctx, u.Email); err != nil {
		h.Log.Warn("delete user: recovery cleanup failed", zap.String("user_id", id), zap.Error(err))
	}

	h.Log.Info("user deleted", zap.String("user_id", id), zap.String("username", u.Username))
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: msgUserDeleted})
}
