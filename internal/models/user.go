// Package models defines the data entities owned by the document store.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authentication identity. Public seller metadata lives
// on Profile, keyed by the same id.
type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  *string    `json:"-" db:"password_hash"`
	EmailVerified bool       `json:"email_verified" db:"email_verified"`
	OAuthProvider *string    `json:"oauth_provider,omitempty" db:"oauth_provider"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
