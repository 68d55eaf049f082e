package collectionpolicy

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

func TestCanModify(t *testing.T) {
	c := models.Collection{ID: "c1", UserID: "u1", Username: "alice"}

	r := httptest.NewRequest("PUT", "/collection/c1", nil)
	if CanModify(r, c) {
		t.Error("anonymous should not modify a collection")
	}

	owner := auth.WithTestUser(r, &auth.SessionUser{ID: "u1", Username: "alice"})
	if !CanModify(owner, c) {
		t.Error("owner should modify own collection")
	}

	other := auth.WithTestUser(r, &auth.SessionUser{ID: "u2", Username: "bob"})
	if CanModify(other, c) {
		t.Error("other user should not modify collection")
	}

	if CanModify(owner, models.Collection{ID: "c2"}) {
		t.Error("collection without owner should not be modifiable")
	}
}
