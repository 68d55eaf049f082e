package collectionstore

import (
	"context"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("collections")}
}

// Create inserts c with a new id. Duplicate recipe ids are dropped.
func (s *Store) Create(ctx context.Context, c models.Collection) (models.Collection, error) {
	c.ID = uuid.NewString()
	c.Name = normalize.Name(c.Name)
	c.RecipeIDs = dedupe(c.RecipeIDs)

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Collection{}, err
	}
	return c, nil
}

// GetByID loads a collection. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var c models.Collection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUserID returns one owner's collections, newest first.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]models.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Collection{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rename sets a new name and returns the stored collection.
func (s *Store) Rename(ctx context.Context, id, name string) (*models.Collection, error) {
	return s.update(ctx, id, bson.M{"$set": bson.M{
		"name":       normalize.Name(name),
		"updated_at": time.Now().UTC(),
	}})
}

// AddRecipe adds recipeID to the collection's set of recipes.
func (s *Store) AddRecipe(ctx context.Context, id, recipeID string) (*models.Collection, error) {
	return s.update(ctx, id, bson.M{
		"$addToSet": bson.M{"recipe_ids": recipeID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

// RemoveRecipe removes recipeID from the collection. Removing an absent
// recipe is not an error.
func (s *Store) RemoveRecipe(ctx context.Context, id, recipeID string) (*models.Collection, error) {
	return s.update(ctx, id, bson.M{
		"$pull": bson.M{"recipe_ids": recipeID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

// PurgeRecipe removes recipeID from every collection. Used when the
// recipe itself is deleted.
func (s *Store) PurgeRecipe(ctx context.Context, recipeID string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"recipe_ids": recipeID},
		bson.M{"$pull": bson.M{"recipe_ids": recipeID}, "$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) update(ctx context.Context, id string, doc bson.M) (*models.Collection, error) {
	var c models.Collection
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, doc, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a collection. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
