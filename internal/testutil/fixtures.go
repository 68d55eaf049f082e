package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/rating"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plaintext password of every fixture user.
const FixturePassword = "password123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	return WithChiURLParams(r, map[string]string{key: value})
}

// WithChiURLParams adds several chi URL parameters at once.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T

	pwHash string
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) passwordHash() string {
	if f.pwHash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
		if err != nil {
			f.t.Fatalf("hash fixture password: %v", err)
		}
		f.pwHash = string(h)
	}
	return f.pwHash
}

// CreateUser creates a public user whose email is <username>@example.com.
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, username, false)
}

// CreatePrivateUser creates a user with is_private set.
func (f *Fixtures) CreatePrivateUser(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, username, true)
}

func (f *Fixtures) insertUser(ctx context.Context, username string, private bool) models.User {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := models.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          strings.ToLower(username) + "@example.com",
		HashedPassword: f.passwordHash(),
		IsPrivate:      private,
		Followers:      []string{},
		Following:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// Follow records follower as following followee on both user documents.
func (f *Fixtures) Follow(ctx context.Context, follower, followee models.User) {
	f.t.Helper()

	users := f.db.Collection("users")
	if _, err := users.UpdateOne(ctx, bson.M{"_id": followee.ID},
		bson.M{"$addToSet": bson.M{"followers": follower.Username}}); err != nil {
		f.t.Fatalf("failed to add follower: %v", err)
	}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": follower.ID},
		bson.M{"$addToSet": bson.M{"following": followee.Username}}); err != nil {
		f.t.Fatalf("failed to add following: %v", err)
	}
}

// CreateRecipe creates a recipe owned by owner. is_public mirrors the
// owner's privacy the same way recipe creation does.
func (f *Fixtures) CreateRecipe(ctx context.Context, owner models.User, name string) models.Recipe {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := models.Recipe{
		ID:       uuid.NewString(),
		Name:     name,
		NameCI:   text.Fold(name),
		UserID:   owner.ID,
		Username: owner.Username,
		Ingredients: []models.Ingredient{
			{Name: "flour", Quantity: 200, Unit: "g"},
		},
		Instructions: []models.Instruction{
			{Body: "Mix everything.", StepNumber: 1},
		},
		CookingTime: 20,
		Difficulty:  2,
		Images:      []string{},
		IsPublic:    !owner.IsPrivate,
		Reviews:     []models.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("recipes").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test recipe: %v", err)
	}
	return rec
}

// AddReview embeds a review by author on recipe and refreshes the stored
// average. A nil rating leaves the review unrated.
func (f *Fixtures) AddReview(ctx context.Context, recipe models.Recipe, author models.User, r *float64) models.Review {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rv := models.Review{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		Rating:    r,
		Body:      "Tasty.",
		LikedBy:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	coll := f.db.Collection("recipes")
	if _, err := coll.UpdateOne(ctx, bson.M{"_id": recipe.ID},
		bson.M{"$push": bson.M{"reviews": rv}}); err != nil {
		f.t.Fatalf("failed to add test review: %v", err)
	}

	var cur models.Recipe
	if err := coll.FindOne(ctx, bson.M{"_id": recipe.ID}).Decode(&cur); err != nil {
		f.t.Fatalf("failed to reload recipe: %v", err)
	}
	if _, err := coll.UpdateOne(ctx, bson.M{"_id": recipe.ID},
		bson.M{"$set": bson.M{"average_rating": rating.Average(cur.Reviews)}}); err != nil {
		f.t.Fatalf("failed to set average rating: %v", err)
	}
	return rv
}

// CreateCollection creates a collection owned by owner.
func (f *Fixtures) CreateCollection(ctx context.Context, owner models.User, name string, recipeIDs ...string) models.Collection {
	f.t.Helper()

	if recipeIDs == nil {
		recipeIDs = []string{}
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	c := models.Collection{
		ID:        uuid.NewString(),
		UserID:    owner.ID,
		Username:  owner.Username,
		Name:      name,
		RecipeIDs: recipeIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("collections").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test collection: %v", err)
	}
	return c
}

// Rating returns a pointer to v for review fixtures.
func Rating(v float64) *float64 { return &v }
