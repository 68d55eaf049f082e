// internal/domain/models/user.go
package models

import (
	"time"
)

// User is a registered account.
//
// NOTE:
//   - Username is immutable after registration. Followers, following,
//     review authorship and liked_by all reference usernames.
//   - Notifications are embedded on the user document but are served
//     through their own endpoint, never with the profile.
type User struct {
	ID             string  `bson:"_id" json:"id"`
	Username       string  `bson:"username" json:"username"`
	Email          string  `bson:"email" json:"email"`
	HashedPassword string  `bson:"hashed_password" json:"-"`
	ProfilePicture *string `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	Bio            *string `bson:"bio,omitempty" json:"bio,omitempty"`
	IsPrivate      bool    `bson:"is_private" json:"is_private"`

	Followers     []string       `bson:"followers" json:"followers"`
	Following     []string       `bson:"following" json:"following"`
	Notifications []Notification `bson:"notifications,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasFollower reports whether username is in u's follower list.
func (u User) HasFollower(username string) bool {
	for _, f := range u.Followers {
		if f == username {
			return true
		}
	}
	return false
}
