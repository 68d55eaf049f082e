package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/inputval"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 100

var (
	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("users cannot follow themselves")
)

// profileProjection leaves out the embedded notifications.
var profileProjection = bson.M{"notifications": 0}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing fields. The caller supplies
// an already hashed password.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	u.Notifications = nil

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, dupError(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// dupError tells a username collision from an email collision using the
// index named in the server's message.
func dupError(err error) error {
	if strings.Contains(err.Error(), "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func (s *Store) getOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	opts := options.FindOne().SetProjection(profileProjection)
	if err := s.c.FindOne(ctx, filter, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getOne(ctx, bson.M{"_id": id})
}

// GetByUsername loads a user by exact username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getOne(ctx, bson.M{"username": normalize.Username(username)})
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, bson.M{"email": normalize.Email(email)})
}

// GetByLogin resolves the login field of the token form: an email-shaped
// value is looked up by email, anything else by username.
func (s *Store) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if inputval.LooksLikeEmail(login) {
		return s.GetByEmail(ctx, login)
	}
	return s.GetByUsername(ctx, login)
}

// List returns up to limit users, oldest first.
func (s *Store) List(ctx context.Context, limit int64) ([]models.User, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetProjection(profileProjection).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the profile fields a user may change. Nil fields are left alone.
type Update struct {
	Email          *string
	Bio            *string
	ProfilePicture *string
	IsPrivate      *bool
}

// Update applies upd and returns the stored user.
// Returns ErrDuplicateEmail if the email already belongs to another user.
func (s *Store) Update(ctx context.Context, id string, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.ProfilePicture != nil {
		set["profile_picture"] = *upd.ProfilePicture
	}
	if upd.IsPrivate != nil {
		set["is_private"] = *upd.IsPrivate
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(profileProjection)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// SetPassword stores a new password hash for the user with email.
func (s *Store) SetPassword(ctx context.Context, email, hash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"hashed_password": hash, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the user and drops their username from every other
// user's follower and following lists. Recipes and collections they own
// are left in place. Returns the number of users deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	u, err := s.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"$or": bson.A{
			bson.M{"followers": u.Username},
			bson.M{"following": u.Username},
		}},
		bson.M{"$pull": bson.M{"followers": u.Username, "following": u.Username}},
	); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}

func (s *Store) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// UsernameExists reports whether username is registered.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, bson.M{"username": normalize.Username(username)})
}

// EmailExists reports whether email is registered.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": normalize.Email(email)})
}

// EmailExistsForOther checks if an email already exists for a user other than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email, excludeID string) (bool, error) {
	return s.exists(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	})
}
