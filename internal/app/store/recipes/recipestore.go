package recipestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/app/system/paging"
	"github.com/dalemusser/kasula/internal/app/system/search"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateReview is returned when the author already reviewed the recipe.
	ErrDuplicateReview = errors.New("user has already reviewed this recipe")
	// ErrAlreadyLiked is returned when the user already liked the review.
	ErrAlreadyLiked = errors.New("user has already liked this review")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("recipes")}
}

// Create inserts rec with a new id, an empty review list and a zero
// average. The caller sets owner fields and is_public.
func (s *Store) Create(ctx context.Context, rec models.Recipe) (models.Recipe, error) {
	rec.ID = uuid.NewString()
	rec.Name = normalize.Name(rec.Name)
	rec.NameCI = text.Fold(rec.Name)
	if rec.Ingredients == nil {
		rec.Ingredients = []models.Ingredient{}
	}
	if rec.Instructions == nil {
		rec.Instructions = []models.Instruction{}
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}
	rec.Reviews = []models.Review{}
	rec.AverageRating = 0

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.Recipe{}, err
	}
	return rec, nil
}

// GetByID loads a recipe with its reviews. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var rec models.Recipe
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListQuery selects a page of recipes visible to Requester.
type ListQuery struct {
	// Requester is the signed-in username, or "" for anonymous.
	Requester string
	Search    string
	Page      paging.Page
}

// ListVisible returns recipes whose owner is public, is the requester, or
// has the requester as a follower. Recipes whose owner no longer exists
// fall back to their stored is_public flag.
func (s *Store) ListVisible(ctx context.Context, q ListQuery) ([]models.Recipe, error) {
	match := bson.M{}
	if f := search.Contains("name_ci", q.Search); f != nil {
		match = f
	}

	visible := bson.A{
		bson.M{"owner.is_private": false},
		bson.M{"owner": bson.M{"$size": 0}, "is_public": true},
	}
	if q.Requester != "" {
		visible = append(visible,
			bson.M{"username": q.Requester},
			bson.M{"owner.followers": q.Requester},
		)
	}

	pipe := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from": "users",
			"let":  bson.M{"uid": "$user_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$uid"}}}},
				bson.M{"$project": bson.M{"is_private": 1, "followers": 1}},
			},
			"as": "owner",
		}}},
		{{Key: "$match", Value: bson.M{"$or": visible}}},
		{{Key: "$sort", Value: q.Page.SortDoc()}},
		{{Key: "$skip", Value: q.Page.Offset}},
		{{Key: "$limit", Value: limitOrDefault(q.Page.Limit)}},
		{{Key: "$project", Value: bson.M{"owner": 0}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Recipe{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUserID returns a page of one owner's recipes. Visibility is the
// caller's concern.
func (s *Store) ListByUserID(ctx context.Context, userID string, page paging.Page) ([]models.Recipe, error) {
	page.Limit = limitOrDefault(page.Limit)
	return s.find(ctx, bson.M{"user_id": userID}, page.FindOptions())
}

// ListByIDs returns the recipes among ids that still exist, newest first.
func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Recipe, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Recipe{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a recipe with id exists.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update holds owner-editable recipe fields. Nil fields are left alone;
// AddImages are appended to the gallery.
type Update struct {
	Name         *string
	Ingredients  *[]models.Ingredient
	Instructions *[]models.Instruction
	CookingTime  *int
	Difficulty   *int
	Image        *string
	AddImages    []string
}

// Update applies upd and returns the stored recipe.
func (s *Store) Update(ctx context.Context, id string, upd Update) (*models.Recipe, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Ingredients != nil {
		set["ingredients"] = *upd.Ingredients
	}
	if upd.Instructions != nil {
		set["instructions"] = *upd.Instructions
	}
	if upd.CookingTime != nil {
		set["cooking_time"] = *upd.CookingTime
	}
	if upd.Difficulty != nil {
		set["difficulty"] = *upd.Difficulty
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	doc := bson.M{"$set": set}
	if len(upd.AddImages) > 0 {
		doc["$push"] = bson.M{"images": bson.M{"$each": upd.AddImages}}
	}

	var rec models.Recipe
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, doc, opts).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a recipe and its embedded reviews. Returns the number
// of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func limitOrDefault(n int64) int64 {
	if n <= 0 {
		return paging.DefaultLimit
	}
	return min(n, paging.MaxLimit)
}
