// internal/domain/models/review.go
package models

import "time"

// Review lives inside its parent Recipe's reviews array.
// Rating is optional; a nil rating does not count toward the average.
type Review struct {
	ID       string   `bson:"_id" json:"id"`
	UserID   string   `bson:"user_id" json:"user_id"`
	Username string   `bson:"username" json:"username"`
	Rating   *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Body     string   `bson:"body" json:"body"`
	Image    *string  `bson:"image,omitempty" json:"image,omitempty"`
	Likes    int      `bson:"likes" json:"likes"`
	LikedBy  []string `bson:"liked_by" json:"liked_by"`

	CreatedAt time.Time `bson:"created_at" json:"creation_date"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_date"`
}

// LikedByUser reports whether username already liked the review.
func (rv Review) LikedByUser(username string) bool {
	for _, u := range rv.LikedBy {
		if u == username {
			return true
		}
	}
	return false
}
