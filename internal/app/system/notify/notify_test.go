package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/kasula/internal/domain/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStore struct {
	got []models.Notification
	to  []string
	err error
}

func (f *fakeStore) AddNotification(_ context.Context, username string, n models.Notification) (models.Notification, error) {
	if f.err != nil {
		return models.Notification{}, f.err
	}
	f.to = append(f.to, username)
	f.got = append(f.got, n)
	return n, nil
}

func TestFollowed(t *testing.T) {
	fs := &fakeStore{}
	New(fs, zap.NewNop()).Followed(context.Background(), "alice", "bob")

	if len(fs.got) != 1 || fs.to[0] != "alice" {
		t.Fatalf("expected one notification to alice, got %v", fs.to)
	}
	if fs.got[0].Type != models.NotificationFollow || !strings.Contains(fs.got[0].Text, "bob") {
		t.Errorf("unexpected notification %+v", fs.got[0])
	}
}

func TestReviewed_SkipsSelf(t *testing.T) {
	fs := &fakeStore{}
	n := New(fs, zap.NewNop())
	recipe := models.Recipe{ID: "r1", Name: "Soup", Username: "alice"}

	n.Reviewed(context.Background(), recipe, "alice")
	if len(fs.got) != 0 {
		t.Fatal("owner should not be notified about themselves")
	}

	n.Reviewed(context.Background(), recipe, "bob")
	if len(fs.got) != 1 || fs.to[0] != "alice" || fs.got[0].Link != "/recipe/r1" {
		t.Errorf("unexpected notifications %+v", fs.got)
	}
}

func TestLiked(t *testing.T) {
	fs := &fakeStore{}
	recipe := models.Recipe{ID: "r1", Name: "Soup", Username: "alice"}
	review := models.Review{ID: "rv1", Username: "bob"}

	New(fs, zap.NewNop()).Liked(context.Background(), recipe, review, "carol")
	if len(fs.got) != 1 || fs.to[0] != "bob" || fs.got[0].Type != models.NotificationLike {
		t.Errorf("unexpected notifications %+v", fs.got)
	}
}

func TestSend_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fs := &fakeStore{err: errors.New("boom")}

	New(fs, zap.New(core)).Followed(context.Background(), "alice", "bob")

	if logs.FilterMessage("notification not delivered").Len() != 1 {
		t.Errorf("expected a warning, got %v", logs.All())
	}
}
