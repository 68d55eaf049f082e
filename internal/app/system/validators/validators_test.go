package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/validators"
	"github.com/dalemusser/kasula/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"users", "recipes", "collections", "password_recovery"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func validUser() bson.M {
	return bson.M{
		"_id":             "u1",
		"username":        "alice",
		"email":           "alice@example.com",
		"hashed_password": "$2a$10$abcdefghijklmnopqrstuv",
		"is_private":      false,
		"followers":       bson.A{},
		"following":       bson.A{},
	}
}

func TestUsersValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	users := db.Collection("users")

	if _, err := users.InsertOne(ctx, validUser()); err != nil {
		t.Fatalf("Insert valid user failed: %v", err)
	}

	missing := validUser()
	missing["_id"] = "u2"
	delete(missing, "hashed_password")
	if _, err := users.InsertOne(ctx, missing); err == nil {
		t.Error("expected validation error for user without hashed_password")
	}

	blank := validUser()
	blank["_id"] = "u3"
	blank["username"] = "   "
	if _, err := users.InsertOne(ctx, blank); err == nil {
		t.Error("expected validation error for blank username")
	}

	badStatus := validUser()
	badStatus["_id"] = "u4"
	badStatus["notifications"] = bson.A{bson.M{"_id": "n1", "status": "archived"}}
	if _, err := users.InsertOne(ctx, badStatus); err == nil {
		t.Error("expected validation error for unknown notification status")
	}
}

func TestRecipesValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	recipes := db.Collection("recipes")

	valid := bson.M{
		"_id":            "r1",
		"name":           "Pancakes",
		"user_id":        "u1",
		"username":       "alice",
		"is_public":      true,
		"average_rating": 0.0,
		"reviews":        bson.A{},
		"created_at":     time.Now(),
	}
	if _, err := recipes.InsertOne(ctx, valid); err != nil {
		t.Fatalf("Insert valid recipe failed: %v", err)
	}

	tooLong := bson.M{
		"_id":            "r2",
		"name":           "This recipe name is far longer than fifty characters in total",
		"user_id":        "u1",
		"username":       "alice",
		"is_public":      true,
		"average_rating": 0.0,
	}
	if _, err := recipes.InsertOne(ctx, tooLong); err == nil {
		t.Error("expected validation error for name over 50 characters")
	}

	badRating := bson.M{
		"_id":            "r3",
		"name":           "Waffles",
		"user_id":        "u1",
		"username":       "alice",
		"is_public":      true,
		"average_rating": 7.5,
	}
	if _, err := recipes.InsertOne(ctx, badRating); err == nil {
		t.Error("expected validation error for average_rating above 5")
	}
}

func TestPasswordRecoveryValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection("password_recovery")

	if _, err := coll.InsertOne(ctx, bson.M{
		"_id":        "p1",
		"email":      "alice@example.com",
		"code_hash":  "hash",
		"attempts":   0,
		"expires_at": time.Now().Add(time.Minute),
	}); err != nil {
		t.Fatalf("Insert valid recovery failed: %v", err)
	}

	if _, err := coll.InsertOne(ctx, bson.M{"_id": "p2", "email": "bob@example.com"}); err == nil {
		t.Error("expected validation error for recovery without code_hash")
	}
}
