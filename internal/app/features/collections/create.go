// internal/app/features/collections/create.go
package collections

import (
	"net/http"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/jsonutil"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/kasula/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate creates a collection owned by the caller.
//
// Route: POST /collection/
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r)

	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, msgInvalidBody)
		return
	}
	in.Name = cleanName(in.Name)
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create collection")
	defer cancel()

	c, err := h.Collections.Create(ctx, models.Collection{
		UserID:    me.ID,
		Username:  me.Username,
		Name:      in.Name,
		RecipeIDs: in.RecipeIDs,
	})
	if err != nil {
		h.ErrLog.Log500(w, r, "create collection failed", err)
		return
	}

	h.Log.Info("collection created", zap.String("collection_id", c.ID), zap.String("user_id", me.ID))
	jsonutil.Write(w, http.StatusCreated, c)
}
