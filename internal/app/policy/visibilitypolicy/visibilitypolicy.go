// Package visibilitypolicy decides read access to content owned by a user.
//
// Visibility rules:
//   - Content of a public owner is visible to everyone, anonymous included
//   - Content of a private owner is visible to the owner
//   - Content of a private owner is visible to usernames in the owner's followers
//   - Everyone else is denied
//
// Callers map a denial to 403 and a missing resource to 404.
package visibilitypolicy

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

// CanView applies the visibility rules. An empty requester is anonymous.
func CanView(ownerIsPrivate bool, ownerFollowers []string, requester, ownerUsername string) bool {
	if !ownerIsPrivate {
		return true
	}
	if requester == "" {
		return false
	}
	if requester == ownerUsername {
		return true
	}
	for _, f := range ownerFollowers {
		if f == requester {
			return true
		}
	}
	return false
}

// CanViewOwner applies CanView to a loaded owner.
func CanViewOwner(owner models.User, requester string) bool {
	return CanView(owner.IsPrivate, owner.Followers, requester, owner.Username)
}

// CanViewRecipe decides whether requester may read recipe. owner is the
// recipe's current owner, or nil when that account no longer exists; in
// that case the recipe's stored is_public flag decides.
func CanViewRecipe(recipe models.Recipe, owner *models.User, requester string) bool {
	if owner == nil {
		return recipe.IsPublic || (requester != "" && requester == recipe.Username)
	}
	return CanViewOwner(*owner, requester)
}

// Requester returns the signed-in username for r, or "" when anonymous.
func Requester(r *http.Request) string {
	return auth.Username(r)
}
