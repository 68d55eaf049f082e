package indexes_test

import (
	"testing"

	"github.com/dalemusser/kasula/internal/app/system/indexes"
	"github.com/dalemusser/kasula/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesNamedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"users":             {"uniq_users_username", "uniq_users_email"},
		"recipes":           {"idx_recipes_user_created", "idx_recipes_name_ci"},
		"collections":       {"idx_collections_user_created", "idx_collections_recipe_ids"},
		"password_recovery": {"uniq_password_recovery_email", "ttl_password_recovery_expires"},
	}

	for coll, names := range want {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("List indexes on %s failed: %v", coll, err)
		}
		found := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				t.Fatalf("decode index: %v", err)
			}
			found[idx["name"].(string)] = true
		}
		cur.Close(ctx)

		for _, n := range names {
			if !found[n] {
				t.Errorf("%s: expected index %q", coll, n)
			}
		}
	}
}

func TestEnsureAll_UniqueUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, bson.M{"_id": "1", "username": "alice", "email": "a@x.com"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := users.InsertOne(ctx, bson.M{"_id": "2", "username": "alice", "email": "b@x.com"}); err == nil {
		t.Error("expected duplicate username to be rejected")
	}
}
