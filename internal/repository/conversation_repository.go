package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// ConversationRepository encapsulates conversation persistence.
type ConversationRepository interface {
	GetActive(ctx context.Context, customerID string, channel domain.Channel) (*domain.Conversation, error)
	Create(ctx context.Context, customerID string, channel domain.Channel, subject *string) (*domain.Conversation, error)
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) GetActive(ctx context.Context, customerID string, channel domain.Channel) (*domain.Conversation, error) {
	const query = `
        SELECT id, customer_id, channel, status, subject, started_at
        FROM conversations
        WHERE customer_id = $1 AND channel = $2 AND status = 'active'
        ORDER BY started_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, customerID, channel)
}

func (r *conversationRepository) Create(ctx context.Context, customerID string, channel domain.Channel, subject *string) (*domain.Conversation, error) {
	const query = `
        INSERT INTO conversations (customer_id, channel, subject)
        VALUES ($1, $2, $3)
        RETURNING id, customer_id, channel, status, subject, started_at`
	var conv domain.Conversation
	if err := r.pool.QueryRow(ctx, query, customerID, channel, subject).Scan(
		&conv.ID,
		&conv.CustomerID,
		&conv.Channel,
		&conv.Status,
		&conv.Subject,
		&conv.StartedAt,
	); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	const query = `
        SELECT id, customer_id, channel, status, subject, started_at
        FROM conversations WHERE id = $1`
	return r.fetchSingle(ctx, query, id)
}

func (r *conversationRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&conv.ID,
		&conv.CustomerID,
		&conv.Channel,
		&conv.Status,
		&conv.Subject,
		&conv.StartedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
