package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/internal/domain"
)

// ValidationRepository handles database operations for validation codes.
// account_id is a unique key: an account holds at most one live code.
type ValidationRepository struct {
	db *sqlx.DB
}

func NewValidationRepository(db *sqlx.DB) *ValidationRepository {
	return &ValidationRepository{db: db}
}

// Replace atomically supersedes the account's code (if any) with a new one.
func (r *ValidationRepository) Replace(
	ctx context.Context,
	accountID int64,
	code, forwardingNumber string,
) (*domain.ValidationCode, error) {
	query := `
		INSERT INTO validation_codes (account_id, code, forwarding_number, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON DUPLICATE KEY UPDATE
			code = VALUES(code),
			forwarding_number = VALUES(forwarding_number),
			created_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, accountID, code, forwardingNumber); err != nil {
		return nil, fmt.Errorf("failed to store validation code: %w", err)
	}

	return r.GetByAccountID(ctx, accountID)
}

func (r *ValidationRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.ValidationCode, error) {
	query := `
		SELECT id, account_id, code, forwarding_number, created_at
		FROM validation_codes
		WHERE account_id = ?
	`

	var code domain.ValidationCode
	if err := r.db.GetContext(ctx, &code, query, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get validation code: %w", err)
	}

	return &code, nil
}

// ListByForwardingNumber returns every live code whose candidate number is number.
func (r *ValidationRepository) ListByForwardingNumber(ctx context.Context, number string) ([]domain.ValidationCode, error) {
	query := `
		SELECT id, account_id, code, forwarding_number, created_at
		FROM validation_codes
		WHERE forwarding_number = ?
		ORDER BY id ASC
	`

	codes := []domain.ValidationCode{}
	if err := r.db.SelectContext(ctx, &codes, query, number); err != nil {
		return nil, fmt.Errorf("failed to list validation codes: %w", err)
	}

	return codes, nil
}

func (r *ValidationRepository) DeleteByAccountID(ctx context.Context, accountID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM validation_codes WHERE account_id = ?", accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete validation codes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// Consume deletes the code and sets the owning account's forwarding number in
// one transaction. It returns domain.ErrNotFound if the code was superseded or
// consumed in the meantime.
func (r *ValidationRepository) Consume(ctx context.Context, code domain.ValidationCode) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM validation_codes WHERE id = ? AND account_id = ? AND code = ? AND forwarding_number = ?",
		code.ID, code.AccountID, code.Code, code.ForwardingNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to delete validation code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("validation code %d no longer live: %w", code.ID, domain.ErrNotFound)
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE accounts SET forwarding_number = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		code.ForwardingNumber, code.AccountID,
	); err != nil {
		return fmt.Errorf("failed to set forwarding number: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit validation: %w", err)
	}

	return nil
}
