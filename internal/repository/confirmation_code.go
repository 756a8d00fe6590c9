package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stroy1click/confirmation-service/internal/db"
	"github.com/stroy1click/confirmation-service/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type confirmationCodeRepository struct {
	db *sqlx.DB
}

func newConfirmationCodeRepository(db *sqlx.DB) *confirmationCodeRepository {
	return &confirmationCodeRepository{
		db: db,
	}
}

const insertConfirmationCodeQuery = `
    INSERT INTO confirmation_codes (id, code, purpose, user_id, expires_at)
    VALUES (uuid_to_bin(:id), :code, :purpose, :user_id, :expires_at)
    `

func (r *confirmationCodeRepository) FindActive(ctx context.Context, purpose domain.Purpose, userID int64) (*domain.ConfirmationCode, error) {
	const op = "repository.confirmationCode.FindActive"

	const query = `
    SELECT bin_to_uuid(id) AS id, code, purpose, user_id, expires_at, created_at
    FROM confirmation_codes
    WHERE purpose = ? AND user_id = ?
    `

	var code domain.ConfirmationCode
	if err := r.db.GetContext(ctx, &code, query, purpose, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select confirmation code failed: %w", op, err)
	}

	return &code, nil
}

func (r *confirmationCodeRepository) CountActive(ctx context.Context, purpose domain.Purpose, userID int64) (int, error) {
	const op = "repository.confirmationCode.CountActive"

	const query = `
    SELECT COUNT(*)
    FROM confirmation_codes
    WHERE purpose = ? AND user_id = ?
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, purpose, userID); err != nil {
		return 0, fmt.Errorf("%s: count confirmation codes failed: %w", op, err)
	}

	return count, nil
}

func (r *confirmationCodeRepository) Save(ctx context.Context, code *domain.ConfirmationCode) error {
	const op = "repository.confirmationCode.Save"

	if _, err := r.db.NamedExecContext(ctx, insertConfirmationCodeQuery, code); err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert confirmation code failed: %w", op, err)
	}

	return nil
}

// Replace atomically swaps the record for the code's (purpose, user_id) scope:
// delete plus insert in one transaction, so the scope never ends up empty on
// failure and never holds two rows.
func (r *confirmationCodeRepository) Replace(ctx context.Context, code *domain.ConfirmationCode) error {
	const op = "repository.confirmationCode.Replace"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	const deleteQuery = `
    DELETE FROM confirmation_codes
    WHERE purpose = ? AND user_id = ?
    `

	if _, err := tx.ExecContext(ctx, deleteQuery, code.Purpose, code.UserID); err != nil {
		return fmt.Errorf("%s: delete confirmation code failed: %w", op, err)
	}

	if _, err := tx.NamedExecContext(ctx, insertConfirmationCodeQuery, code); err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert confirmation code failed: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx failed: %w", op, err)
	}

	return nil
}

func (r *confirmationCodeRepository) DeleteByScope(ctx context.Context, purpose domain.Purpose, userID int64) error {
	const op = "repository.confirmationCode.DeleteByScope"

	const query = `
    DELETE FROM confirmation_codes
    WHERE purpose = ? AND user_id = ?
    `

	if _, err := r.db.ExecContext(ctx, query, purpose, userID); err != nil {
		return fmt.Errorf("%s: delete confirmation code failed: %w", op, err)
	}

	return nil
}

func (r *confirmationCodeRepository) DeleteByCode(ctx context.Context, code int) error {
	const op = "repository.confirmationCode.DeleteByCode"

	const query = `
    DELETE FROM confirmation_codes
    WHERE code = ?
    `

	if _, err := r.db.ExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("%s: delete confirmation code failed: %w", op, err)
	}

	return nil
}

func (r *confirmationCodeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const op = "repository.confirmationCode.DeleteByID"

	const query = `
    DELETE FROM confirmation_codes
    WHERE id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete confirmation code failed: %w", op, err)
	}

	return nil
}

func (r *confirmationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.confirmationCode.DeleteExpired"

	const query = `
    DELETE FROM confirmation_codes
    WHERE expires_at <= ?
    `

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: delete expired confirmation codes failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == db.DuplicateEntry
}
