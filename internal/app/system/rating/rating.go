// Package rating computes a recipe's average rating from its embedded reviews.
package rating

import (
	"math"

	"github.com/dalemusser/kasula/internal/domain/models"
)

const (
	Min = 0.0
	Max = 5.0
)

// Average returns the mean rating of the reviews that carry a rating.
// Reviews without a rating count toward neither the sum nor the divisor.
// No rated reviews yields 0.
func Average(reviews []models.Review) float64 {
	var sum float64
	n := 0
	for _, rv := range reviews {
		if rv.Rating == nil {
			continue
		}
		sum += *rv.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Round1 rounds a submitted rating to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// InRange reports whether v is within [Min, Max].
func InRange(v float64) bool {
	return v >= Min && v <= Max
}
