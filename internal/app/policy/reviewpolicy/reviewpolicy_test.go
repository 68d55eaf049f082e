package reviewpolicy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/domain/models"
)

func as(id, username string) *http.Request {
	r := httptest.NewRequest("POST", "/review/r1", nil)
	return auth.WithTestUser(r, &auth.SessionUser{ID: id, Username: username})
}

func TestCanCreate(t *testing.T) {
	owner := &models.User{ID: "u1", Username: "alice", Followers: []string{"bob"}}
	public := models.Recipe{ID: "r1", UserID: "u1", Username: "alice", IsPublic: true}
	private := models.Recipe{ID: "r2", UserID: "u1", Username: "alice", IsPublic: false}
	reviewed := models.Recipe{
		ID: "r3", UserID: "u1", Username: "alice", IsPublic: true,
		Reviews: []models.Review{{ID: "rv1", UserID: "u3", Username: "carol"}},
	}

	tests := []struct {
		name   string
		r      *http.Request
		recipe models.Recipe
		owner  *models.User
		want   *Denial
	}{
		{"stranger on public recipe", as("u3", "carol"), public, owner, nil},
		{"owner reviews own recipe", as("u1", "alice"), public, owner, DenyOwnReview},
		{"follower on private recipe", as("u2", "bob"), private, owner, nil},
		{"stranger on private recipe", as("u3", "carol"), private, owner, DenyPrivateNotFollowing},
		{"private recipe of deleted owner", as("u2", "bob"), private, nil, DenyPrivateNotFollowing},
		{"second review", as("u3", "carol"), reviewed, owner, DenyDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanCreate(tt.r, tt.recipe, tt.owner)
			if got != tt.want {
				t.Errorf("CanCreate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDenial_Status(t *testing.T) {
	if !DenyOwnReview.Forbidden || !DenyPrivateNotFollowing.Forbidden || !DenyOwnLike.Forbidden {
		t.Error("ownership and privacy denials should be forbidden")
	}
	if DenyDuplicate.Forbidden || DenyAlreadyLiked.Forbidden {
		t.Error("conflict denials should not be forbidden")
	}
	if DenyDuplicate.Error() != "User has already reviewed this recipe" {
		t.Errorf("unexpected message %q", DenyDuplicate.Error())
	}
}

func TestCanModify(t *testing.T) {
	rv := models.Review{ID: "rv1", UserID: "u2", Username: "bob"}

	if !CanModify(as("u2", "bob"), rv) {
		t.Error("author should modify own review")
	}
	if CanModify(as("u1", "alice"), rv) {
		t.Error("non-author should not modify review")
	}
	if CanModify(httptest.NewRequest("PUT", "/", nil), rv) {
		t.Error("anonymous should not modify review")
	}
}

func TestCanLike(t *testing.T) {
	rv := models.Review{ID: "rv1", UserID: "u2", Username: "bob", LikedBy: []string{"carol"}}

	if got := CanLike(as("u2", "bob"), rv); got != DenyOwnLike {
		t.Errorf("author like: got %v, want DenyOwnLike", got)
	}
	if got := CanLike(as("u3", "carol"), rv); got != DenyAlreadyLiked {
		t.Errorf("repeat like: got %v, want DenyAlreadyLiked", got)
	}
	if got := CanLike(as("u1", "alice"), rv); got != nil {
		t.Errorf("first like: got %v, want nil", got)
	}
}
