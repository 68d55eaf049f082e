package recipestore_test

import (
	"testing"

	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	"github.com/dalemusser/kasula/internal/app/system/paging"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/kasula/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func names(recs []models.Recipe) map[string]bool {
	out := map[string]bool{}
	for _, r := range recs {
		out[r.Name] = true
	}
	return out
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")

	created, err := store.Create(ctx, models.Recipe{
		Name:     "  Sunday   Roast ",
		UserID:   alice.ID,
		Username: alice.Username,
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Sunday Roast" {
		t.Errorf("Name: got %q, want %q", created.Name, "Sunday Roast")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Reviews == nil || created.Images == nil {
		t.Error("expected empty slices, not nil")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.AverageRating != 0 || len(got.Reviews) != 0 {
		t.Errorf("new recipe should have no reviews, got %+v", got)
	}

	if _, err := store.GetByID(ctx, "missing"); err != mongo.ErrNoDocuments {
		t.Errorf("missing: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_ListVisible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	carol := fx.CreatePrivateUser(ctx, "carol")
	bob := fx.CreateUser(ctx, "bob")
	fx.Follow(ctx, bob, carol)

	fx.CreateRecipe(ctx, alice, "Public Pie")
	fx.CreateRecipe(ctx, carol, "Secret Stew")

	page := paging.Page{Limit: 10, Sort: paging.SortNewest}

	anon, err := store.ListVisible(ctx, recipestore.ListQuery{Page: page})
	if err != nil {
		t.Fatalf("ListVisible(anon) failed: %v", err)
	}
	if got := names(anon); !got["Public Pie"] || got["Secret Stew"] {
		t.Errorf("anonymous should see only public recipes, got %v", got)
	}

	follower, err := store.ListVisible(ctx, recipestore.ListQuery{Requester: "bob", Page: page})
	if err != nil {
		t.Fatalf("ListVisible(bob) failed: %v", err)
	}
	if got := names(follower); !got["Public Pie"] || !got["Secret Stew"] {
		t.Errorf("follower should see both, got %v", got)
	}

	own, err := store.ListVisible(ctx, recipestore.ListQuery{Requester: "carol", Page: page})
	if err != nil {
		t.Fatalf("ListVisible(carol) failed: %v", err)
	}
	if got := names(own); !got["Secret Stew"] {
		t.Errorf("owner should see own private recipe, got %v", got)
	}

	stranger, err := store.ListVisible(ctx, recipestore.ListQuery{Requester: "alice", Page: page})
	if err != nil {
		t.Fatalf("ListVisible(alice) failed: %v", err)
	}
	if got := names(stranger); got["Secret Stew"] {
		t.Errorf("non-follower should not see private recipe, got %v", got)
	}
}

func TestStore_ListVisible_SearchAndPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	fx.CreateRecipe(ctx, alice, "Apple Pie")
	fx.CreateRecipe(ctx, alice, "Cherry Pie")
	fx.CreateRecipe(ctx, alice, "Tomato Soup")

	pies, err := store.ListVisible(ctx, recipestore.ListQuery{
		Search: "pie",
		Page:   paging.Page{Limit: 10, Sort: paging.SortName},
	})
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(pies) != 2 || pies[0].Name != "Apple Pie" || pies[1].Name != "Cherry Pie" {
		t.Errorf("search by name: got %v", names(pies))
	}

	second, err := store.ListVisible(ctx, recipestore.ListQuery{
		Page: paging.Page{Limit: 1, Offset: 1, Sort: paging.SortName},
	})
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(second) != 1 || second[0].Name != "Cherry Pie" {
		t.Errorf("second page: got %v", names(second))
	}
}

func TestStore_ListByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	r1 := fx.CreateRecipe(ctx, alice, "One")
	fx.CreateRecipe(ctx, alice, "Two")

	got, err := store.ListByIDs(ctx, []string{r1.ID, "deleted-id"})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != r1.ID {
		t.Errorf("ListByIDs: got %v", names(got))
	}

	empty, err := store.ListByIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("ListByIDs(nil) = %v, %v", empty, err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	rec := fx.CreateRecipe(ctx, alice, "Soup")

	name := "Better Soup"
	minutes := 45
	got, err := store.Update(ctx, rec.ID, recipestore.Update{
		Name:        &name,
		CookingTime: &minutes,
		AddImages:   []string{"/uploads/recipes/a.jpg"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != name || got.CookingTime != minutes {
		t.Errorf("updated fields: got %q/%d", got.Name, got.CookingTime)
	}
	if got.Difficulty != rec.Difficulty {
		t.Errorf("unset field changed: got %d, want %d", got.Difficulty, rec.Difficulty)
	}
	if len(got.Images) != 1 {
		t.Errorf("expected 1 gallery image, got %v", got.Images)
	}
	if !got.UpdatedAt.After(rec.UpdatedAt) && !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Error("expected UpdatedAt to move forward")
	}

	if _, err := store.Update(ctx, "missing", recipestore.Update{Name: &name}); err != mongo.ErrNoDocuments {
		t.Errorf("missing: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "alice")
	rec := fx.CreateRecipe(ctx, alice, "Soup")

	n, err := store.Delete(ctx, rec.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v; want 1, nil", n, err)
	}
	if ok, _ := store.Exists(ctx, rec.ID); ok {
		t.Error("recipe should be gone")
	}
}
