// Package collectionpolicy provides ownership checks for collections.
//
// Authorization rules:
//   - Only the owner (matched by user id) can rename or delete a collection
//   - Only the owner can add or remove recipes
//   - Read access follows the owner's visibility (see visibilitypolicy)
package collectionpolicy

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

// CanModify reports whether the signed-in user owns c.
func CanModify(r *http.Request, c models.Collection) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return c.UserID != "" && c.UserID == u.ID
}
