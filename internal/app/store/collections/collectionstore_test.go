package collectionstore_test

import (
	"testing"

	collectionstore "github.com/dalemusser/kasula/internal/app/store/collections"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/kasula/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")

	created, err := store.Create(ctx, models.Collection{
		UserID:    alice.ID,
		Username:  alice.Username,
		Name:      " Weeknight  dinners ",
		RecipeIDs: []string{"r1", "r1", "r2", ""},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Weeknight dinners" {
		t.Errorf("Name: got %q", created.Name)
	}
	if len(created.RecipeIDs) != 2 {
		t.Errorf("RecipeIDs should be deduplicated, got %v", created.RecipeIDs)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UserID != alice.ID {
		t.Errorf("UserID: got %q, want %q", got.UserID, alice.ID)
	}

	if _, err := store.GetByID(ctx, "missing"); err != mongo.ErrNoDocuments {
		t.Errorf("missing: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	fx.CreateCollection(ctx, alice, "A")
	fx.CreateCollection(ctx, alice, "B")
	fx.CreateCollection(ctx, bob, "C")

	list, err := store.ListByUserID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 collections, got %d", len(list))
	}
	for _, c := range list {
		if c.UserID != alice.ID {
			t.Errorf("collection %q belongs to %q", c.Name, c.UserID)
		}
	}
}

func TestStore_RenameAddRemove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	c := fx.CreateCollection(ctx, alice, "Old")

	renamed, err := store.Rename(ctx, c.ID, "New")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Name != "New" {
		t.Errorf("Name: got %q, want New", renamed.Name)
	}

	if _, err := store.AddRecipe(ctx, c.ID, "r1"); err != nil {
		t.Fatalf("AddRecipe failed: %v", err)
	}
	added, err := store.AddRecipe(ctx, c.ID, "r1")
	if err != nil {
		t.Fatalf("second AddRecipe failed: %v", err)
	}
	if len(added.RecipeIDs) != 1 {
		t.Errorf("AddRecipe should be a set add, got %v", added.RecipeIDs)
	}

	removed, err := store.RemoveRecipe(ctx, c.ID, "r1")
	if err != nil {
		t.Fatalf("RemoveRecipe failed: %v", err)
	}
	if len(removed.RecipeIDs) != 0 {
		t.Errorf("RemoveRecipe: got %v", removed.RecipeIDs)
	}

	if _, err := store.Rename(ctx, "missing", "x"); err != mongo.ErrNoDocuments {
		t.Errorf("missing: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateCollection(ctx, fx.CreateUser(ctx, "alice"), "A")

	n, err := store.Delete(ctx, c.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v; want 1, nil", n, err)
	}
	n, err = store.Delete(ctx, c.ID)
	if err != nil || n != 0 {
		t.Errorf("second Delete = %d, %v; want 0, nil", n, err)
	}
}

func TestStore_PurgeRecipe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	a := fx.CreateCollection(ctx, alice, "A", "r1", "r2")
	b := fx.CreateCollection(ctx, alice, "B", "r1")
	fx.CreateCollection(ctx, alice, "C", "r3")

	n, err := store.PurgeRecipe(ctx, "r1")
	if err != nil || n != 2 {
		t.Fatalf("PurgeRecipe = %d, %v; want 2, nil", n, err)
	}

	for _, id := range []string{a.ID, b.ID} {
		got, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		for _, rid := range got.RecipeIDs {
			if rid == "r1" {
				t.Errorf("collection %s still holds r1", got.Name)
			}
		}
	}
}
