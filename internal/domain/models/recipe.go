// internal/domain/models/recipe.go
package models

import "time"

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `bson:"name" json:"name" validate:"required,max=100" label:"Ingredient name"`
	Quantity float64 `bson:"quantity" json:"quantity" validate:"gte=0" label:"Ingredient quantity"`
	Unit     string  `bson:"unit" json:"unit" validate:"max=30" label:"Ingredient unit"`
}

// Instruction is one ordered step of a recipe.
type Instruction struct {
	Body       string `bson:"body" json:"body" validate:"required,max=2000" label:"Instruction"`
	StepNumber int    `bson:"step_number" json:"step_number" validate:"gte=1" label:"Step number"`
}

// Recipe is owned by a user and embeds its reviews.
//
// IsPublic is copied from the owner's privacy flag when the recipe is
// created and is not re-synced when the owner later changes privacy.
type Recipe struct {
	ID           string        `bson:"_id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	NameCI       string        `bson:"name_ci" json:"-"`
	UserID       string        `bson:"user_id" json:"user_id"`
	Username     string        `bson:"username" json:"username"`
	Ingredients  []Ingredient  `bson:"ingredients" json:"ingredients"`
	Instructions []Instruction `bson:"instructions" json:"instructions"`
	CookingTime  int           `bson:"cooking_time" json:"cooking_time"`
	Difficulty   int           `bson:"difficulty" json:"difficulty"`
	Image        *string       `bson:"image,omitempty" json:"image,omitempty"`
	Images       []string      `bson:"images" json:"images"`
	IsPublic     bool          `bson:"is_public" json:"is_public"`

	AverageRating float64  `bson:"average_rating" json:"average_rating"`
	Reviews       []Review `bson:"reviews" json:"reviews"`

	CreatedAt time.Time `bson:"created_at" json:"creation_date"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_date"`
}

// ReviewBy returns the review written by username, if any.
func (r Recipe) ReviewBy(username string) (Review, bool) {
	for _, rv := range r.Reviews {
		if rv.Username == username {
			return rv, true
		}
	}
	return Review{}, false
}

// FindReview returns the review with the given id, if any.
func (r Recipe) FindReview(id string) (Review, bool) {
	for _, rv := range r.Reviews {
		if rv.ID == id {
			return rv, true
		}
	}
	return Review{}, false
}
