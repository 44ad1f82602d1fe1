package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/internal/domain"
)

// MessageRepository handles database operations for inbound messages.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(
	ctx context.Context,
	telephoneID int64,
	from, body string,
	receivedAt time.Time,
) (*domain.Message, error) {
	query := `
		INSERT INTO messages (telephone_id, from_number, body, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, telephoneID, from, body, receivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &domain.Message{
		ID:          id,
		TelephoneID: telephoneID,
		From:        from,
		Body:        body,
		CreatedAt:   receivedAt,
	}, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `
		SELECT id, telephone_id, from_number, body, created_at
		FROM messages
		WHERE id = ?
	`

	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &message, nil
}

// ListByTelephoneIDs returns messages for the given telephones, newest (highest id) first.
func (r *MessageRepository) ListByTelephoneIDs(ctx context.Context, telephoneIDs []int64) ([]domain.Message, error) {
	if len(telephoneIDs) == 0 {
		return []domain.Message{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, telephone_id, from_number, body, created_at
		FROM messages
		WHERE telephone_id IN (?)
		ORDER BY id DESC
	`, telephoneIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build message query: %w", err)
	}

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListPage returns one page of a telephone's messages, newest first, with the total count.
func (r *MessageRepository) ListPage(ctx context.Context, telephoneID int64, page, pageSize int) ([]domain.Message, int64, error) {
	offset := (page - 1) * pageSize

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM messages WHERE telephone_id = ?"
	if err := r.db.GetContext(ctx, &totalCount, countQuery, telephoneID); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query := `
		SELECT id, telephone_id, from_number, body, created_at
		FROM messages
		WHERE telephone_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, telephoneID, pageSize, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to get messages: %w", err)
	}

	return messages, totalCount, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("no message found with id %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
