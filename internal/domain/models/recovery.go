// internal/domain/models/recovery.go
package models

import "time"

// PasswordRecovery is a pending password reset keyed by email.
// At most one record exists per email; the code is stored bcrypt-hashed.
type PasswordRecovery struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	CodeHash  string    `bson:"code_hash"`
	Attempts  int       `bson:"attempts"`
	ExpiresAt time.Time `bson:"expires_at"` // TTL index field
	CreatedAt time.Time `bson:"created_at"`
}
