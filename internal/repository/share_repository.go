package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/internal/domain"
)

// ShareRepository handles database operations for share requests.
// The (from_account_id, to_account_id) pair is a unique key.
type ShareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create inserts a pending request. It returns domain.ErrAlreadyShared when a
// request for the pair already exists, pending or completed.
func (r *ShareRepository) Create(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error) {
	query := `
		INSERT INTO share_requests (from_account_id, to_account_id, completed, created_at, updated_at)
		VALUES (?, ?, FALSE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	if _, err := r.db.ExecContext(ctx, query, fromID, toID); err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrAlreadyShared
		}
		return nil, fmt.Errorf("failed to create share request: %w", err)
	}

	return r.Get(ctx, fromID, toID)
}

func (r *ShareRepository) Get(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error) {
	query := `
		SELECT id, from_account_id, to_account_id, completed, created_at, updated_at
		FROM share_requests
		WHERE from_account_id = ? AND to_account_id = ?
	`

	var request domain.ShareRequest
	if err := r.db.GetContext(ctx, &request, query, fromID, toID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share request: %w", err)
	}

	return &request, nil
}

// MarkCompleted flips a pending request to completed. It reports false when
// no pending request exists for the pair.
func (r *ShareRepository) MarkCompleted(ctx context.Context, fromID, toID int64) (bool, error) {
	query := `
		UPDATE share_requests
		SET completed = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE from_account_id = ? AND to_account_id = ? AND completed = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return false, fmt.Errorf("failed to accept share request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// Delete removes the request for the pair in either state. Deleting a
// missing request is not an error.
func (r *ShareRepository) Delete(ctx context.Context, fromID, toID int64) (int64, error) {
	query := `
		DELETE FROM share_requests
		WHERE from_account_id = ? AND to_account_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete share request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// ListPendingIncoming returns pending requests addressed to the account,
// each joined with the sender's profile.
func (r *ShareRepository) ListPendingIncoming(ctx context.Context, toID int64) ([]domain.ShareRequestWithProfile, error) {
	query := `
		SELECT sr.id, sr.from_account_id, sr.to_account_id, sr.completed, sr.created_at, sr.updated_at,
		       a.id AS ` + "`counterpart.id`" + `, a.email AS ` + "`counterpart.email`" + `
		FROM share_requests sr
		JOIN accounts a ON a.id = sr.from_account_id
		WHERE sr.to_account_id = ? AND sr.completed = FALSE
		ORDER BY sr.id ASC
	`

	requests := []domain.ShareRequestWithProfile{}
	if err := r.db.SelectContext(ctx, &requests, query, toID); err != nil {
		return nil, fmt.Errorf("failed to list incoming share requests: %w", err)
	}

	return requests, nil
}

// ListPendingOutgoing returns pending requests sent by the account, each
// joined with the recipient's profile.
func (r *ShareRepository) ListPendingOutgoing(ctx context.Context, fromID int64) ([]domain.ShareRequestWithProfile, error) {
	query := `
		SELECT sr.id, sr.from_account_id, sr.to_account_id, sr.completed, sr.created_at, sr.updated_at,
		       a.id AS ` + "`counterpart.id`" + `, a.email AS ` + "`counterpart.email`" + `
		FROM share_requests sr
		JOIN accounts a ON a.id = sr.to_account_id
		WHERE sr.from_account_id = ? AND sr.completed = FALSE
		ORDER BY sr.id ASC
	`

	requests := []domain.ShareRequestWithProfile{}
	if err := r.db.SelectContext(ctx, &requests, query, fromID); err != nil {
		return nil, fmt.Errorf("failed to list outgoing share requests: %w", err)
	}

	return requests, nil
}

// ListSharingWith returns the accounts that completed a share to toID.
func (r *ShareRepository) ListSharingWith(ctx context.Context, toID int64) ([]domain.Profile, error) {
	query := `
		SELECT a.id, a.email
		FROM share_requests sr
		JOIN accounts a ON a.id = sr.from_account_id
		WHERE sr.to_account_id = ? AND sr.completed = TRUE
		ORDER BY sr.id ASC
	`

	profiles := []domain.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, toID); err != nil {
		return nil, fmt.Errorf("failed to list sharing accounts: %w", err)
	}

	return profiles, nil
}

// ListSharedBy returns the accounts fromID has an active share with.
func (r *ShareRepository) ListSharedBy(ctx context.Context, fromID int64) ([]domain.Profile, error) {
	query := `
		SELECT a.id, a.email
		FROM share_requests sr
		JOIN accounts a ON a.id = sr.to_account_id
		WHERE sr.from_account_id = ? AND sr.completed = TRUE
		ORDER BY sr.id ASC
	`

	profiles := []domain.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, fromID); err != nil {
		return nil, fmt.Errorf("failed to list shared accounts: %w", err)
	}

	return profiles, nil
}
