// Package userpolicy provides self-service checks for user accounts.
//
// Authorization rules:
//   - A user can update, delete, or change the picture of only their own account (by user id)
//   - A user can read and change only their own notifications (by username)
package userpolicy

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
)

// CanModify reports whether the signed-in user is the account targetID.
func CanModify(r *http.Request, targetID string) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return targetID != "" && u.ID == targetID
}

// IsSelf reports whether the signed-in user has the given username.
func IsSelf(r *http.Request, username string) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return username != "" && u.Username == username
}
