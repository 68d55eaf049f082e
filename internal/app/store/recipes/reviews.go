package recipestore

import (
	"context"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/rating"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddReview appends rv to the recipe. The filter refuses a second review
// by the same author even when two requests race past the handler check.
func (s *Store) AddReview(ctx context.Context, recipeID string, rv models.Review) (models.Review, error) {
	rv.ID = uuid.NewString()
	if rv.LikedBy == nil {
		rv.LikedBy = []string{}
	}
	rv.Likes = 0
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": recipeID, "reviews.user_id": bson.M{"$ne": rv.UserID}},
		bson.M{"$push": bson.M{"reviews": rv}},
	)
	if err != nil {
		return models.Review{}, err
	}
	if res.MatchedCount == 0 {
		if ok, err := s.Exists(ctx, recipeID); err != nil {
			return models.Review{}, err
		} else if ok {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, mongo.ErrNoDocuments
	}
	return rv, nil
}

// ReviewUpdate holds author-editable review fields. Nil fields are left alone.
type ReviewUpdate struct {
	Rating *float64
	Body   *string
	Image  *string
}

// UpdateReview edits one embedded review in place and returns it.
func (s *Store) UpdateReview(ctx context.Context, recipeID, reviewID string, upd ReviewUpdate) (models.Review, error) {
	set := bson.M{"reviews.$.updated_at": time.Now().UTC()}
	if upd.Rating != nil {
		set["reviews.$.rating"] = *upd.Rating
	}
	if upd.Body != nil {
		set["reviews.$.body"] = *upd.Body
	}
	if upd.Image != nil {
		set["reviews.$.image"] = *upd.Image
	}

	return s.updateReview(ctx,
		bson.M{"_id": recipeID, "reviews._id": reviewID},
		bson.M{"$set": set},
		reviewID,
	)
}

// LikeReview adds username to the review's likers and bumps its count.
// Returns ErrAlreadyLiked if username had already liked it.
func (s *Store) LikeReview(ctx context.Context, recipeID, reviewID, username string) (models.Review, error) {
	rv, err := s.updateReview(ctx,
		bson.M{"_id": recipeID, "reviews": bson.M{"$elemMatch": bson.M{
			"_id":      reviewID,
			"liked_by": bson.M{"$ne": username},
		}}},
		bson.M{
			"$inc":  bson.M{"reviews.$.likes": 1},
			"$push": bson.M{"reviews.$.liked_by": username},
		},
		reviewID,
	)
	if err == mongo.ErrNoDocuments {
		rec, gerr := s.GetByID(ctx, recipeID)
		if gerr != nil {
			return models.Review{}, gerr
		}
		if _, ok := rec.FindReview(reviewID); ok {
			return models.Review{}, ErrAlreadyLiked
		}
	}
	return rv, err
}

func (s *Store) updateReview(ctx context.Context, filter, update bson.M, reviewID string) (models.Review, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"reviews": bson.M{"$elemMatch": bson.M{"_id": reviewID}}})

	var rec struct {
		Reviews []models.Review `bson:"reviews"`
	}
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec); err != nil {
		return models.Review{}, err
	}
	if len(rec.Reviews) == 0 {
		return models.Review{}, mongo.ErrNoDocuments
	}
	return rec.Reviews[0], nil
}

// RemoveReview deletes one embedded review. Returns mongo.ErrNoDocuments
// when the recipe or review does not exist.
func (s *Store) RemoveReview(ctx context.Context, recipeID, reviewID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": recipeID, "reviews._id": reviewID},
		bson.M{"$pull": bson.M{"reviews": bson.M{"_id": reviewID}}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetAverageRating stores avg on the recipe.
func (s *Store) SetAverageRating(ctx context.Context, recipeID string, avg float64) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": recipeID},
		bson.M{"$set": bson.M{"average_rating": avg}},
	)
	return err
}

// RecomputeRating reads the current reviews back and stores their average.
// It is a second write after the review change, not part of it.
func (s *Store) RecomputeRating(ctx context.Context, recipeID string) (float64, error) {
	var rec struct {
		Reviews []models.Review `bson:"reviews"`
	}
	opts := options.FindOne().SetProjection(bson.M{"reviews.rating": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": recipeID}, opts).Decode(&rec); err != nil {
		return 0, err
	}
	avg := rating.Average(rec.Reviews)
	if err := s.SetAverageRating(ctx, recipeID, avg); err != nil {
		return 0, err
	}
	return avg, nil
}
