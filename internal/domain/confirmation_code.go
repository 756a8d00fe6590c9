package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purpose is the closed set of actions a confirmation code can gate.
type Purpose string

const (
	PurposeEmailVerification Purpose = "EMAIL"
	PurposePasswordReset     Purpose = "PASSWORD"
)

func (p Purpose) IsValid() bool {
	return p == PurposeEmailVerification || p == PurposePasswordReset
}

const (
	// Code value bounds, inclusive.
	CodeMin = 1_000_000
	CodeMax = 9_999_999

	// CodeTTL is the fixed lifetime of a confirmation code.
	CodeTTL = 24 * time.Hour
)

// ConfirmationCode is a single-use numeric code bound to one (purpose, user)
// scope. At most one row exists per scope, enforced by the storage layer.
// Records are never updated in place: every lifecycle transition is a
// delete and, where applicable, a fresh insert.
type ConfirmationCode struct {
	ID        uuid.UUID `db:"id"`
	Code      int       `db:"code"`
	Purpose   Purpose   `db:"purpose"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// Valid reports whether submitted matches the stored value and the code has
// not expired at now. Expiry is exclusive of the boundary instant: a code is
// valid strictly before ExpiresAt and invalid from ExpiresAt on. Every caller
// must go through this predicate so the boundary cannot drift between
// operations.
func (c *ConfirmationCode) Valid(submitted int, now time.Time) bool {
	return c.Code == submitted && now.Before(c.ExpiresAt)
}
