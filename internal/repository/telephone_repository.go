package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/internal/domain"
)

// TelephoneRepository handles database operations for provisioned numbers.
type TelephoneRepository struct {
	db *sqlx.DB
}

func NewTelephoneRepository(db *sqlx.DB) *TelephoneRepository {
	return &TelephoneRepository{db: db}
}

func (r *TelephoneRepository) Create(ctx context.Context, accountID int64, number string) (*domain.Telephone, error) {
	query := `
		INSERT INTO telephones (account_id, number, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`

	result, err := r.db.ExecContext(ctx, query, accountID, number)
	if err != nil {
		return nil, fmt.Errorf("failed to create telephone: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return r.get(ctx, "id = ?", id)
}

func (r *TelephoneRepository) GetByID(ctx context.Context, id int64) (*domain.Telephone, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *TelephoneRepository) GetByNumber(ctx context.Context, number string) (*domain.Telephone, error) {
	return r.get(ctx, "number = ?", number)
}

func (r *TelephoneRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.Telephone, error) {
	return r.get(ctx, "account_id = ?", accountID)
}

// ListByAccountIDs returns the telephones owned by any of the given accounts, ordered by id.
func (r *TelephoneRepository) ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]domain.Telephone, error) {
	if len(accountIDs) == 0 {
		return []domain.Telephone{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, account_id, number, created_at
		FROM telephones
		WHERE account_id IN (?)
		ORDER BY id ASC
	`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build telephone query: %w", err)
	}

	telephones := []domain.Telephone{}
	if err := r.db.SelectContext(ctx, &telephones, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list telephones: %w", err)
	}

	return telephones, nil
}

func (r *TelephoneRepository) get(ctx context.Context, where string, arg any) (*domain.Telephone, error) {
	query := "SELECT id, account_id, number, created_at FROM telephones WHERE " + where

	var telephone domain.Telephone
	if err := r.db.GetContext(ctx, &telephone, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get telephone: %w", err)
	}

	return &telephone, nil
}
