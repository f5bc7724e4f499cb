package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// TicketCreateInput describes ticket creation payload. The ticket number is
// generated by the repository.
type TicketCreateInput struct {
	ConversationID string
	CustomerID     string
	Channel        domain.Channel
	Subject        string
	Category       *domain.TicketCategory
	Priority       domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, resolution *string) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

// generateTicketNumber builds a human-legible globally unique reference that
// embeds the creation date, e.g. TKT-20260829-3FA2B1.
func generateTicketNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("TKT-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

func (r *ticketRepository) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	ticket := &domain.Ticket{
		TicketNumber:   generateTicketNumber(),
		ConversationID: input.ConversationID,
		CustomerID:     input.CustomerID,
		Channel:        input.Channel,
		Subject:        input.Subject,
		Category:       input.Category,
		Priority:       priority,
	}
	const query = `
        INSERT INTO tickets (ticket_number, conversation_id, customer_id, channel, subject, category, priority)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, status, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.ConversationID,
		ticket.CustomerID,
		ticket.Channel,
		ticket.Subject,
		ticket.Category,
		ticket.Priority,
	).Scan(&ticket.ID, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	const query = `
        SELECT id, ticket_number, conversation_id, customer_id, channel, subject,
               category, priority, status, resolution, created_at, updated_at, resolved_at
        FROM tickets WHERE ticket_number = $1`
	var ticket domain.Ticket
	err := r.pool.QueryRow(ctx, query, ticketNumber).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.ConversationID,
		&ticket.CustomerID,
		&ticket.Channel,
		&ticket.Subject,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Resolution,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, resolution *string) (*domain.Ticket, error) {
	var resolvedAt *time.Time
	if status == domain.TicketStatusResolved || status == domain.TicketStatusClosed {
		now := time.Now().UTC()
		resolvedAt = &now
	}
	const query = `
        UPDATE tickets SET status = $2, resolution = $3, resolved_at = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING id, ticket_number, conversation_id, customer_id, channel, subject,
                  category, priority, status, resolution, created_at, updated_at, resolved_at`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id, status, resolution, resolvedAt).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.ConversationID,
		&ticket.CustomerID,
		&ticket.Channel,
		&ticket.Subject,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Resolution,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
