// Package reviewpolicy provides the rules for writing and liking reviews.
//
// Authorization rules:
//   - Recipe owners cannot review their own recipes
//   - A recipe that is not public can be reviewed only by followers of its owner
//   - Each user can review a recipe at most once
//   - Only the review's author (matched by user id) can update or delete it
//   - Authors cannot like their own review, and each user can like a review once
package reviewpolicy

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

// Denial explains why an action was refused. The message is the
// client-facing detail.
type Denial struct {
	// Forbidden is true when the refusal is an authorization failure (403)
	// rather than a request conflict (400).
	Forbidden bool
	Message   string
}

func (d *Denial) Error() string { return d.Message }

var (
	DenyOwnReview           = &Denial{Forbidden: true, Message: "Creators cannot review their own recipes"}
	DenyPrivateNotFollowing = &Denial{Forbidden: true, Message: "Cannot review a private recipe without following the creator of the recipe"}
	DenyOwnLike             = &Denial{Forbidden: true, Message: "You cannot like your own review"}

	DenyDuplicate    = &Denial{Message: "User has already reviewed this recipe"}
	DenyAlreadyLiked = &Denial{Message: "You have already liked this review"}
)

// CanCreate checks whether the signed-in user may review recipe. owner is
// the recipe's owner, or nil if that account no longer exists. A nil
// return means allowed.
func CanCreate(r *http.Request, recipe models.Recipe, owner *models.User) *Denial {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return DenyPrivateNotFollowing
	}
	if u.ID == recipe.UserID || u.Username == recipe.Username {
		return DenyOwnReview
	}
	if !recipe.IsPublic && (owner == nil || !owner.HasFollower(u.Username)) {
		return DenyPrivateNotFollowing
	}
	if _, exists := recipe.ReviewBy(u.Username); exists {
		return DenyDuplicate
	}
	return nil
}

// CanModify reports whether the signed-in user wrote rv.
func CanModify(r *http.Request, rv models.Review) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return rv.UserID != "" && rv.UserID == u.ID
}

// CanLike checks whether the signed-in user may like rv.
func CanLike(r *http.Request, rv models.Review) *Denial {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return DenyOwnLike
	}
	if rv.UserID == u.ID || rv.Username == u.Username {
		return DenyOwnLike
	}
	if rv.LikedByUser(u.Username) {
		return DenyAlreadyLiked
	}
	return nil
}
