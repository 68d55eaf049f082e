// internal/domain/models/collection.go
package models

import "time"

// Collection is a user-owned, named set of recipe ids.
type Collection struct {
	ID        string   `bson:"_id" json:"id"`
	UserID    string   `bson:"user_id" json:"user_id"`
	Username  string   `bson:"username" json:"username"`
	Name      string   `bson:"name" json:"name"`
	RecipeIDs []string `bson:"recipe_ids" json:"recipe_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
