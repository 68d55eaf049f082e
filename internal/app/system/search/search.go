// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxQueryLength bounds the ?search term.
const MaxQueryLength = 100

// Fold normalizes a user query the same way *_ci fields are written.
func Fold(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLength {
		q = q[:MaxQueryLength]
	}
	return text.Fold(q)
}

// Contains returns a filter matching documents whose folded field contains
// q, or nil when q is blank. Regex metacharacters in q match literally.
func Contains(field, q string) bson.M {
	q = Fold(q)
	if q == "" {
		return nil
	}
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(q)}}
}

// Prefix is Contains anchored at the start of the field, which can use an
// index on field.
func Prefix(field, q string) bson.M {
	q = Fold(q)
	if q == "" {
		return nil
	}
	return bson.M{field: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q)}}
}
