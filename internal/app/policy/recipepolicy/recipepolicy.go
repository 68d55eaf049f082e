// Package recipepolicy provides ownership checks for recipes.
//
// Authorization rules:
//   - Only the recipe's owner (matched by user id) can update or delete it
package recipepolicy

import (
	"net/http"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

// CanModify reports whether the signed-in user owns recipe.
func CanModify(r *http.Request, recipe models.Recipe) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return recipe.UserID != "" && recipe.UserID == u.ID
}
