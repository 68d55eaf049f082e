// Package notify appends the notifications the service raises on its own
// (new follower, new review, review liked). Delivery is best effort: a
// failure is logged and never fails the request that caused it.
package notify

import (
	"context"
	"fmt"

	"github.com/dalemusser/kasula/internal/domain/models"
	"go.uber.org/zap"
)

// Appender stores a notification for username.
type Appender interface {
	AddNotification(ctx context.Context, username string, n models.Notification) (models.Notification, error)
}

// Notifier builds and appends service notifications.
type Notifier struct {
	store Appender
	log   *zap.Logger
}

// New creates a Notifier.
func New(store Appender, logger *zap.Logger) *Notifier {
	return &Notifier{store: store, log: logger}
}

// Followed tells target that follower started following them.
func (n *Notifier) Followed(ctx context.Context, target, follower string) {
	n.send(ctx, target, models.Notification{
		Type: models.NotificationFollow,
		Text: fmt.Sprintf("%s started following you", follower),
		Link: "/user/followers/" + target,
	})
}

// Reviewed tells the recipe owner that reviewer reviewed it.
func (n *Notifier) Reviewed(ctx context.Context, recipe models.Recipe, reviewer string) {
	if recipe.Username == "" || recipe.Username == reviewer {
		return
	}
	n.send(ctx, recipe.Username, models.Notification{
		Type:  models.NotificationReview,
		Text:  fmt.Sprintf("%s reviewed your recipe %q", reviewer, recipe.Name),
		Image: recipe.Image,
		Link:  "/recipe/" + recipe.ID,
	})
}

// Liked tells the review's author that liker liked it.
func (n *Notifier) Liked(ctx context.Context, recipe models.Recipe, review models.Review, liker string) {
	if review.Username == "" || review.Username == liker {
		return
	}
	n.send(ctx, review.Username, models.Notification{
		Type: models.NotificationLike,
		Text: fmt.Sprintf("%s liked your review of %q", liker, recipe.Name),
		Link: "/review/" + recipe.ID,
	})
}

func (n *Notifier) send(ctx context.Context, to string, note models.Notification) {
	if _, err := n.store.AddNotification(ctx, to, note); err != nil {
		n.log.Warn("notification not delivered",
			zap.String("to", to),
			zap.String("type", note.Type),
			zap.Error(err))
	}
}
