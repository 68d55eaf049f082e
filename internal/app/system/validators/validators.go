// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/kasula/internal/app/system/rating"
	"github.com/dalemusser/kasula/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("recipes", recipesSchema())
	ensure("collections", collectionsSchema())
	ensure("password_recovery", passwordRecoverySchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	statusEnum := bson.A{models.NotificationUnread, models.NotificationRead, models.NotificationDeleted}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "email", "hashed_password", "is_private"},
			"properties": bson.M{
				"username":        nonBlank,
				"email":           nonBlank,
				"hashed_password": nonBlank,
				"profile_picture": bson.M{"bsonType": bson.A{"string", "null"}},
				"bio":             bson.M{"bsonType": bson.A{"string", "null"}},
				"is_private":      bson.M{"bsonType": "bool"},
				"followers":       bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"following":       bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"notifications": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"_id", "status"},
						"properties": bson.M{
							"status": bson.M{"enum": statusEnum},
						},
					},
				},
			},
		},
	}
}

func recipesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "user_id", "username", "is_public", "average_rating"},
			"properties": bson.M{
				"name":           bson.M{"bsonType": "string", "minLength": 1, "maxLength": 50, "pattern": ".*\\S.*"},
				"name_ci":        bson.M{"bsonType": "string"},
				"user_id":        nonBlank,
				"username":       nonBlank,
				"is_public":      bson.M{"bsonType": "bool"},
				"average_rating": bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": rating.Min, "maximum": rating.Max},
				"cooking_time":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"difficulty":     bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"images":         bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"reviews": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"_id", "user_id", "username"},
						"properties": bson.M{
							"rating": bson.M{"bsonType": bson.A{"double", "int", "long", "null"}, "minimum": rating.Min, "maximum": rating.Max},
							"likes":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
						},
					},
				},
			},
		},
	}
}

func collectionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "username", "name"},
			"properties": bson.M{
				"user_id":    nonBlank,
				"username":   nonBlank,
				"name":       nonBlank,
				"recipe_ids": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func passwordRecoverySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "code_hash", "expires_at"},
			"properties": bson.M{
				"email":      nonBlank,
				"code_hash":  nonBlank,
				"attempts":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"expires_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
