package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddNotification appends n to username's notifications. Id, date and
// status are assigned here. Returns mongo.ErrNoDocuments for an unknown user.
func (s *Store) AddNotification(ctx context.Context, username string, n models.Notification) (models.Notification, error) {
	n.ID = uuid.NewString()
	n.Date = time.Now().UTC()
	n.Username = username
	n.Status = models.NotificationUnread

	res, err := s.c.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$push": bson.M{"notifications": n}},
	)
	if err != nil {
		return models.Notification{}, err
	}
	if res.MatchedCount == 0 {
		return models.Notification{}, mongo.ErrNoDocuments
	}
	return n, nil
}

// ListNotifications returns username's notifications in the order they
// arrived. An empty status returns everything except deleted ones;
// otherwise only notifications with that status are returned.
func (s *Store) ListNotifications(ctx context.Context, username, status string) ([]models.Notification, error) {
	var u struct {
		Notifications []models.Notification `bson:"notifications"`
	}
	opts := options.FindOne().SetProjection(bson.M{"notifications": 1})
	if err := s.c.FindOne(ctx, bson.M{"username": username}, opts).Decode(&u); err != nil {
		return nil, err
	}

	out := make([]models.Notification, 0, len(u.Notifications))
	for _, n := range u.Notifications {
		switch {
		case status == "" && n.Status == models.NotificationDeleted:
			continue
		case status != "" && n.Status != status:
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// SetNotificationStatus updates one notification in place. Returns
// mongo.ErrNoDocuments when the user or notification does not exist.
func (s *Store) SetNotificationStatus(ctx context.Context, username, notificationID, status string) (models.Notification, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"notifications": bson.M{"$elemMatch": bson.M{"_id": notificationID}}})

	var u struct {
		Notifications []models.Notification `bson:"notifications"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"username": username, "notifications._id": notificationID},
		bson.M{"$set": bson.M{"notifications.$.status": status}},
		opts,
	).Decode(&u)
	if err != nil {
		return models.Notification{}, err
	}
	if len(u.Notifications) == 0 {
		return models.Notification{}, mongo.ErrNoDocuments
	}
	return u.Notifications[0], nil
}

// PruneNotifications drops notifications marked deleted before cutoff
// from every user. Returns the number of users modified.
func (s *Store) PruneNotifications(ctx context.Context, cutoff time.Time) (int64, error) {
	stale := bson.M{"status": models.NotificationDeleted, "date": bson.M{"$lt": cutoff}}
	res, err := s.c.UpdateMany(ctx,
		bson.M{"notifications": bson.M{"$elemMatch": stale}},
		bson.M{"$pull": bson.M{"notifications": stale}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
