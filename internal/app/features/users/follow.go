// internal/app/features/users/follow.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/policy/visibilitypolicy"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleFollow makes the caller follow {username} and notifies them.
// Following someone already followed is a no-op.
//
// Route: PUT /user/follow/{username}
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)
	target := normalize.Username(chi.URLParam(r, "username"))
	if target == me.Username {
		apierrors.BadRequest(w, msgSelfFollow)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "follow user")
	defer cancel()

	u, ok := h.loadByUsername(w, r, target)
	if !ok {
		return
	}
	if !u.HasFollower(me.Username) {
		if err := h.Users.Follow(ctx, me.Username, target); err != nil {
			h.followErr(w, r, target, err)
			return
		}
		h.Notify.Followed(ctx, target, me.Username)
	}
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: fmt.Sprintf(msgFollowing, target)})
}

// HandleUnfollow removes the follow relation.
//
// Route: DELETE /user/follow/{username}
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)
	target := normalize.Username(chi.URLParam(r, "username"))
	if target == me.Username {
		apierrors.BadRequest(w, msgSelfFollow)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "unfollow user")
	defer cancel()

	if err := h.Users.Unfollow(ctx, me.Username, target); err != nil {
		h.followErr(w, r, target, err)
		return
	}
	jsonutil.Write(w, http.StatusOK, messageResponse{Message: fmt.Sprintf(msgUnfollowed, target)})
}

func (h *Handler) followErr(w http.ResponseWriter, r *http.Request, target string, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, target))
		return
	}
	h.ErrLog.Log500(w, r, "follow update failed", err)
}

// HandleFollowers lists who follows {username}. Private accounts show
// their lists only to themselves and their followers.
//
// Route: GET /user/followers/{username}
func (h *Handler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	h.writeFollowList(w, r, func(u *models.User) []string { return u.Followers })
}

// HandleFollowing lists whom {username} follows.
//
// Route: GET /user/following/{username}
func (h *Handler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	h.writeFollowList(w, r, func(u *models.User) []string { return u.Following })
}

func (h *Handler) writeFollowList(w http.ResponseWriter, r *http.Request, pick func(*models.User) []string) {
	u, ok := h.loadByUsername(w, r, normalize.Username(chi.URLParam(r, "username")))
	if !ok {
		return
	}
	if !visibilitypolicy.CanViewOwner(*u, visibilitypolicy.Requester(r)) {
		apierrors.Forbidden(w, msgPrivateProfile)
		return
	}
	list := pick(u)
	if list == nil {
		list = []string{}
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// loadByUsername writes 404/500 itself and reports whether u is usable.
func (h *Handler) loadByUsername(w http.ResponseWriter, r *http.Request, username string) (*models.User, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user by username")
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, fmt.Sprintf(msgUserNotFound, username))
		return nil, false
	}
	if err != nil {
		h.ErrLog.Log500(w, r, "get user by username failed", err)
		return nil, false
	}
	return u, true
}
