// internal/app/store/recovery/store.go
package recoverystore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the length of the recovery code (6 digits).
	CodeLength = 6
	// DefaultExpiry is how long a recovery code is valid.
	DefaultExpiry = 15 * time.Minute
	// DefaultMaxAttempts is the number of wrong codes tolerated per recovery.
	DefaultMaxAttempts = 5
	// BcryptCost for hashing codes.
	BcryptCost = 10
)

var (
	// ErrNotFound is returned when no unexpired recovery exists for the email.
	ErrNotFound = errors.New("recovery not found or expired")
	// ErrInvalidCode is returned when the code doesn't match.
	ErrInvalidCode = errors.New("invalid recovery code")
	// ErrTooManyAttempts is returned once the attempt limit is reached.
	ErrTooManyAttempts = errors.New("too many recovery attempts")
)

// Store manages pending password recoveries, one per email.
type Store struct {
	c           *mongo.Collection
	expiry      time.Duration
	maxAttempts int
}

// New creates a Store. Non-positive values fall back to the defaults.
func New(db *mongo.Database, expiry time.Duration, maxAttempts int) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Store{
		c:           db.Collection("password_recovery"),
		expiry:      expiry,
		maxAttempts: maxAttempts,
	}
}

// Expiry returns the expiry duration for recovery codes.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// Create replaces any pending recovery for email with a fresh one and
// returns the plain text code to send to the user.
func (s *Store) Create(ctx context.Context, email string) (string, error) {
	email = normalize.Email(email)
	now := time.Now().UTC()

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	if _, err := s.c.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return "", fmt.Errorf("clear previous recovery: %w", err)
	}

	rec := models.PasswordRecovery{
		ID:        uuid.NewString(),
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert recovery: %w", err)
	}
	return code, nil
}

// Verify checks code against the pending recovery for email. Every check
// counts as an attempt. The record is deleted after a successful match.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	email = normalize.Email(email)

	var rec models.PasswordRecovery
	err := s.c.FindOne(ctx, bson.M{
		"email":      email,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if rec.Attempts >= s.maxAttempts {
		return ErrTooManyAttempts
	}

	_, _ = s.c.UpdateOne(ctx, bson.M{"_id": rec.ID}, bson.M{"$inc": bson.M{"attempts": 1}})

	if err := bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)); err != nil {
		return ErrInvalidCode
	}

	_, _ = s.c.DeleteOne(ctx, bson.M{"_id": rec.ID})
	return nil
}

// DeleteByEmail removes any pending recovery for email.
func (s *Store) DeleteByEmail(ctx context.Context, email string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"email": normalize.Email(email)})
	return err
}

// DeleteExpired removes recoveries whose expiry is before now. The TTL
// index does the same, but its monitor only runs about once a minute.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// generateCode returns a uniformly random zero-padded numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
