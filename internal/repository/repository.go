package repository

import (
	"context"
	"time"

	"github.com/stroy1click/confirmation-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	ConfirmationCodes ConfirmationCodes
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		ConfirmationCodes: newConfirmationCodeRepository(db),
	}
}

// ConfirmationCodes is the store for confirmation-code records. The table
// carries a UNIQUE (purpose, user_id) key, so at most one row exists per
// scope and a concurrent insert for the same scope loses with
// domain.ErrDuplicateEntry. All deletes are idempotent.
type ConfirmationCodes interface {
	FindActive(ctx context.Context, purpose domain.Purpose, userID int64) (*domain.ConfirmationCode, error)
	CountActive(ctx context.Context, purpose domain.Purpose, userID int64) (int, error)
	Save(ctx context.Context, code *domain.ConfirmationCode) error
	Replace(ctx context.Context, code *domain.ConfirmationCode) error
	DeleteByScope(ctx context.Context, purpose domain.Purpose, userID int64) error
	DeleteByCode(ctx context.Context, code int) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
