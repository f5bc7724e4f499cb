package dto

import (
	"time"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// SubmitRequest is the public support form payload.
type SubmitRequest struct {
	Name     string                `json:"name"`
	Email    string                `json:"email"`
	Subject  string                `json:"subject"`
	Message  string                `json:"message"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// SubmitResponse is the intake receipt.
type SubmitResponse struct {
	TicketNumber      string    `json:"ticket_number"`
	ConversationID    string    `json:"conversation_id"`
	Status            string    `json:"status"`
	EstimatedResponse string    `json:"estimated_response"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// TicketStatusResponse reports a ticket's current state.
type TicketStatusResponse struct {
	TicketNumber string                 `json:"ticket_number"`
	Channel      domain.Channel         `json:"channel"`
	Subject      string                 `json:"subject"`
	Category     *domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority  `json:"priority"`
	Status       domain.TicketStatus    `json:"status"`
	Resolution   *string                `json:"resolution,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	ResolvedAt   *time.Time             `json:"resolved_at,omitempty"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status     domain.TicketStatus `json:"status"`
	Resolution *string             `json:"resolution"`
}

// CustomerResponse is the lookup result.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationResponse is a conversation with its transcript.
type ConversationResponse struct {
	ID         string                    `json:"id"`
	CustomerID string                    `json:"customer_id"`
	Channel    domain.Channel            `json:"channel"`
	Status     domain.ConversationStatus `json:"status"`
	Subject    *string                   `json:"subject"`
	StartedAt  time.Time                 `json:"started_at"`
	Messages   []MessageResponse         `json:"messages"`
}

// MessageResponse is one transcript entry.
type MessageResponse struct {
	ID         string            `json:"id"`
	SenderType domain.SenderType `json:"sender_type"`
	Content    string            `json:"content"`
	Channel    domain.Channel    `json:"channel"`
	Metadata   map[string]any    `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ChannelMetricResponse is one aggregated metric row.
type ChannelMetricResponse struct {
	Channel    domain.Channel    `json:"channel"`
	MetricType domain.MetricType `json:"metric_type"`
	AvgValue   float64           `json:"avg_value"`
	Count      int64             `json:"count"`
}
