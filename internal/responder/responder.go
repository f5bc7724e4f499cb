package responder

import (
	"context"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// Status is the workflow verdict of a responder run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusEscalated Status = "escalated"
	StatusError     Status = "error"
)

// Request carries one inbound customer message through the response engine.
type Request struct {
	Message        string
	Channel        domain.Channel
	CustomerName   string
	CustomerID     string
	ConversationID string
}

// Result is the structured outcome of a run.
type Result struct {
	Status       Status
	TicketNumber string
	Category     domain.TicketCategory
	Escalated    bool
	Severity     domain.EscalationSeverity
	Reason       string
	Response     string
}

// Responder produces response text and a workflow verdict for an inbound
// message. Implementations must create the ticket before returning any
// customer-facing response text.
type Responder interface {
	Run(ctx context.Context, req Request) (Result, error)
}

// Generator produces the response text for the normal (non-escalated) flow.
// The rule-based and generation-backed strategies are the two
// implementations, selected at composition time.
type Generator interface {
	Generate(ctx context.Context, input GenerationInput) (string, error)
}

// GenerationInput is everything a generator may ground its answer in.
type GenerationInput struct {
	Message        string
	Channel        domain.Channel
	CustomerName   string
	TicketNumber   string
	Category       domain.TicketCategory
	SearchContext  string
	HistoryContext string
	HasResults     bool
}
