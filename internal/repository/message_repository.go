package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// MessageRepository encapsulates message persistence and history lookups.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	CustomerHistory(ctx context.Context, customerID string, limit int) ([]domain.HistoryEntry, error)
	ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (conversation_id, sender_type, content, channel, metadata)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	metadata := msg.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return r.pool.QueryRow(ctx, query,
		msg.ConversationID,
		msg.SenderType,
		msg.Content,
		msg.Channel,
		metadata,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) CustomerHistory(ctx context.Context, customerID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT c.id, c.channel, c.status, c.subject, m.sender_type, m.content, m.created_at
        FROM conversations c
        JOIN messages m ON c.id = m.conversation_id
        WHERE c.customer_id = $1
        ORDER BY m.created_at DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ConversationID,
			&entry.Channel,
			&entry.Status,
			&entry.Subject,
			&entry.SenderType,
			&entry.Content,
			&entry.MessageTime,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	const query = `
        SELECT id, conversation_id, sender_type, content, channel, metadata, created_at
        FROM messages
        WHERE conversation_id = $1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.SenderType,
			&msg.Content,
			&msg.Channel,
			&msg.Metadata,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
