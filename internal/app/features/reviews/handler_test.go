package reviews_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	"github.com/dalemusser/kasula/internal/app/features/reviews"
	"github.com/dalemusser/kasula/internal/app/policy/reviewpolicy"
	recipestore "github.com/dalemusser/kasula/internal/app/store/recipes"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/dalemusser/kasula/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reviews.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := reviews.NewHandler(db, testutil.NewLocalUploader(t), 0, apierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func decode[T any](t *testing.T, rec *testutil.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func create(h *reviews.Handler, u models.User, recipeID, body string) *testutil.ResponseRecorder {
	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPost, "/review/"+recipeID, body), u)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithChiURLParam(req, "recipe_id", recipeID))
	return rec
}

func average(t *testing.T, fx *testutil.Fixtures, recipeID string) float64 {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	rec, err := recipestore.New(fx.DB()).GetByID(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return rec.AverageRating
}

func TestReviewLifecycle_AverageRating(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	soup := fx.CreateRecipe(ctx, alice, "Soup")

	rec := create(h, bob, soup.ID, `{"rating":5,"body":"Great"}`)
	rec.AssertStatus(t, http.StatusCreated)
	rv := decode[models.Review](t, rec)
	if got := average(t, fx, soup.ID); got != 5.0 {
		t.Fatalf("after create: average = %v, want 5", got)
	}

	params := map[string]string{"recipe_id": soup.ID, "review_id": rv.ID}

	upd := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/", `{"rating":3}`), bob)
	updRec := testutil.NewRecorder()
	h.HandleUpdate(updRec, testutil.WithChiURLParams(upd, params))
	updRec.AssertStatus(t, http.StatusOK)
	if got := average(t, fx, soup.ID); got != 3.0 {
		t.Fatalf("after update: average = %v, want 3", got)
	}

	del := testutil.NewAuthenticatedRequest(http.MethodDelete, "/", bob)
	delRec := testutil.NewRecorder()
	h.HandleDelete(delRec, testutil.WithChiURLParams(del, params))
	delRec.AssertStatus(t, http.StatusOK)
	delRec.AssertContains(t, "Review successfully deleted")
	if got := average(t, fx, soup.ID); got != 0 {
		t.Fatalf("after delete: average = %v, want 0", got)
	}
}

func TestHandleCreate_Rules(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreatePrivateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	carol := fx.CreateUser(ctx, "carol")
	fx.Follow(ctx, carol, alice)
	soup := fx.CreateRecipe(ctx, alice, "Soup")

	own := create(h, alice, soup.ID, `{"rating":4}`)
	own.AssertStatus(t, http.StatusForbidden)
	own.AssertContains(t, reviewpolicy.DenyOwnReview.Message)

	stranger := create(h, bob, soup.ID, `{"rating":4}`)
	stranger.AssertStatus(t, http.StatusForbidden)
	stranger.AssertContains(t, reviewpolicy.DenyPrivateNotFollowing.Message)

	create(h, carol, soup.ID, `{"rating":4}`).AssertStatus(t, http.StatusCreated)

	dup := create(h, carol, soup.ID, `{"rating":2}`)
	dup.AssertStatus(t, http.StatusBadRequest)
	dup.AssertContains(t, reviewpolicy.DenyDuplicate.Message)

	create(h, carol, "missing", `{"rating":2}`).AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreate_Rating(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	carol := fx.CreateUser(ctx, "carol")
	soup := fx.CreateRecipe(ctx, alice, "Soup")

	bad := create(h, bob, soup.ID, `{"rating":7}`)
	bad.AssertStatus(t, http.StatusBadRequest)
	bad.AssertContains(t, "Rating must be between 0 and 5")

	rec := create(h, bob, soup.ID, `{"rating":3.46,"body":"<script>x</script>ok"}`)
	rec.AssertStatus(t, http.StatusCreated)
	rv := decode[models.Review](t, rec)
	if rv.Rating == nil || *rv.Rating != 3.5 {
		t.Errorf("rating not rounded: %v", rv.Rating)
	}
	if strings.Contains(rv.Body, "<script>") {
		t.Errorf("body not sanitized: %q", rv.Body)
	}

	// Unrated reviews do not pull the average down.
	create(h, carol, soup.ID, `{"body":"No score"}`).AssertStatus(t, http.StatusCreated)
	if got := average(t, fx, soup.ID); got != 3.5 {
		t.Errorf("average = %v, want 3.5", got)
	}
}

func TestHandleCreate_NotifiesOwner(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	soup := fx.CreateRecipe(ctx, alice, "Soup")

	create(h, bob, soup.ID, `{"rating":4}`).AssertStatus(t, http.StatusCreated)

	notes, err := userstore.New(fx.DB()).ListNotifications(ctx, "alice", "")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Type != models.NotificationReview {
		t.Errorf("expected one review notification, got %+v", notes)
	}
}

func TestHandleCreate_MultipartWithImage(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	soup := fx.CreateRecipe(ctx, alice, "Soup")

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/review/"+soup.ID,
		map[string]string{"review": `{"rating":4,"body":"Lovely"}`},
		testutil.FilePart{Field: "file", Filename: "plate.png", Data: testutil.PNG(t, 10, 10)})
	req = testutil.WithChiURLParam(testutil.WithUser(req, bob), "recipe_id", soup.ID)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rv := decode[models.Review](t, rec)
	if rv.Image == nil || !strings.HasPrefix(*rv.Image, "/uploads/reviews/") {
		t.Errorf("image not stored: %v", rv.Image)
	}
}

func TestHandleUpdate_NotAuthor(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	carol := fx.CreateUser(ctx, "carol")
	soup := fx.CreateRecipe(ctx, alice, "Soup")
	rv := fx.AddReview(ctx, soup, bob, testutil.Rating(4))

	params := map[string]string{"recipe_id": soup.ID, "review_id": rv.ID}

	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/", `{"rating":1}`), carol)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, testutil.WithChiURLParams(req, params))
	rec.AssertStatus(t, http.StatusForbidden)

	params["review_id"] = "missing"
	req = testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/", `{"rating":1}`), bob)
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec, testutil.WithChiURLParams(req, params))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleLike(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	carol := fx.CreateUser(ctx, "carol")
	soup := fx.CreateRecipe(ctx, alice, "Soup")
	rv := fx.AddReview(ctx, soup, bob, testutil.Rating(4))

	like := func(u models.User) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(http.MethodPatch, "/", u)
		rec := testutil.NewRecorder()
		h.HandleLike(rec, testutil.WithChiURLParams(req, map[string]string{
			"recipe_id": soup.ID, "review_id": rv.ID,
		}))
		return rec
	}

	own := like(bob)
	own.AssertStatus(t, http.StatusForbidden)
	own.AssertContains(t, reviewpolicy.DenyOwnLike.Message)

	first := like(carol)
	first.AssertStatus(t, http.StatusOK)
	if got := decode[models.Review](t, first); got.Likes != 1 || !got.LikedByUser("carol") {
		t.Errorf("like not recorded: %+v", got)
	}

	again := like(carol)
	again.AssertStatus(t, http.StatusBadRequest)
	again.AssertContains(t, reviewpolicy.DenyAlreadyLiked.Message)

	notes, err := userstore.New(fx.DB()).ListNotifications(ctx, "bob", "")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Type != models.NotificationLike {
		t.Errorf("expected one like notification, got %+v", notes)
	}
}

func TestHandleList_PublicEvenForPrivateRecipe(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	alice := fx.CreatePrivateUser(ctx, "alice")
	bob := fx.CreateUser(ctx, "bob")
	fx.Follow(ctx, bob, alice)
	soup := fx.CreateRecipe(ctx, alice, "Soup")
	fx.AddReview(ctx, soup, bob, testutil.Rating(5))

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/"), "recipe_id", soup.ID)
	rec := testutil.NewRecorder()
	h.HandleList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := decode[[]models.Review](t, rec); len(got) != 1 {
		t.Errorf("expected 1 review, got %d", len(got))
	}
}

func TestRoutes_MutationsRequireSignIn(t *testing.T) {
	h, _ := newTestHandler(t)
	router := reviews.Routes(h)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/r1"},
		{http.MethodPut, "/r1/v1"},
		{http.MethodDelete, "/r1/v1"},
		{http.MethodPatch, "/like/r1/v1"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}
