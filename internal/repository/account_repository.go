package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/internal/domain"
)

const accountColumns = "id, email, external_id, forwarding_number, created_at, updated_at"

// AccountRepository handles database operations for accounts.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, email, externalID string) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (email, external_id, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	result, err := r.db.ExecContext(ctx, query, email, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = ?"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE email = ?"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE external_id = ?"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by external id: %w", err)
	}

	return &account, nil
}

// SetForwardingNumber sets or (with nil) clears the forwarding number.
func (r *AccountRepository) SetForwardingNumber(ctx context.Context, id int64, number *string) error {
	query := `
		UPDATE accounts
		SET forwarding_number = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, number, id)
	if err != nil {
		return fmt.Errorf("failed to set forwarding number: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows > 0 {
		return nil
	}

	// Zero rows can also mean the row already held these values.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ?)", id); err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		return fmt.Errorf("no account found with id %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
