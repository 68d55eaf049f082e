package userstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Follow makes follower follow followee. Both lists are sets, so repeating
// a follow is a no-op. Returns mongo.ErrNoDocuments if either user is gone.
func (s *Store) Follow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return ErrSelfFollow
	}
	return s.link(ctx, follower, followee, "$addToSet")
}

// Unfollow removes the relation created by Follow.
func (s *Store) Unfollow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return ErrSelfFollow
	}
	return s.link(ctx, follower, followee, "$pull")
}

// link applies op to followee.followers and follower.following. The two
// writes are not atomic.
func (s *Store) link(ctx context.Context, follower, followee, op string) error {
	now := time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"username": followee},
		bson.M{op: bson.M{"followers": follower}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	res, err = s.c.UpdateOne(ctx,
		bson.M{"username": follower},
		bson.M{op: bson.M{"following": followee}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
