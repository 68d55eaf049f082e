// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is used when ?limit is absent or invalid.
	DefaultLimit = 10
	// MaxLimit caps ?limit.
	MaxLimit = 100
)

// Sort keys accepted in ?sort.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortRating = "rating"
	SortName   = "name"
)

// Page is an offset/limit window plus sort order.
type Page struct {
	Limit  int64
	Offset int64
	Sort   string
}

// Parse reads ?limit, ?offset and ?sort. Invalid values fall back to defaults.
func Parse(r *http.Request) Page {
	p := Page{Limit: DefaultLimit, Sort: SortNewest}

	if n, err := strconv.ParseInt(query.Get(r, "limit"), 10, 64); err == nil && n > 0 {
		p.Limit = min(n, MaxLimit)
	}
	if n, err := strconv.ParseInt(query.Get(r, "offset"), 10, 64); err == nil && n > 0 {
		p.Offset = n
	}
	switch s := query.Get(r, "sort"); s {
	case SortOldest, SortRating, SortName:
		p.Sort = s
	}
	return p
}

// SortDoc maps the sort key to a Mongo sort document. _id breaks ties so
// pages are stable.
func (p Page) SortDoc() bson.D {
	switch p.Sort {
	case SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case SortRating:
		return bson.D{{Key: "average_rating", Value: -1}, {Key: "_id", Value: 1}}
	case SortName:
		return bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}

// FindOptions applies the window and sort to a Find.
func (p Page) FindOptions() *options.FindOptions {
	return options.Find().SetSort(p.SortDoc()).SetSkip(p.Offset).SetLimit(p.Limit)
}
