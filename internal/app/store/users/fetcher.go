package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher so a token for a deleted account
// stops working immediately.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser retrieves a user by ID. A missing user is (nil, nil).
func (f *Fetcher) FetchUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u struct {
		ID       string `bson:"_id"`
		Username string `bson:"username"`
	}
	proj := options.FindOne().SetProjection(bson.M{"_id": 1, "username": 1})
	err := f.users.FindOne(ctx, bson.M{"_id": userID}, proj).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	return &auth.SessionUser{ID: u.ID, Username: u.Username}, nil
}
