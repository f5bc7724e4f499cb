package responder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/formatter"
	"github.com/spec-kit/support-pipeline/internal/repository"
)

// Engine drives the shared response workflow for both strategies:
// escalation policy first, then ticket -> history -> knowledge lookup ->
// generation. Only ticket creation is fatal; history and search degrade to
// sentinel context, and generators handle their own backend failures.
type Engine struct {
	tickets   repository.TicketRepository
	messages  repository.MessageRepository
	knowledge repository.KnowledgeRepository
	metrics   repository.MetricRepository
	bus       events.Bus
	generator Generator
	logger    *zap.Logger

	searchLimit  int
	historyLimit int
}

// Dependencies bundles collaborators for the engine.
type Dependencies struct {
	TicketRepo    repository.TicketRepository
	MessageRepo   repository.MessageRepository
	KnowledgeRepo repository.KnowledgeRepository
	MetricRepo    repository.MetricRepository
	Bus           events.Bus
	Generator     Generator
	Logger        *zap.Logger
	SearchLimit   int
	HistoryLimit  int
}

// NewEngine constructs the response engine around a generator strategy.
func NewEngine(deps Dependencies) *Engine {
	searchLimit := deps.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 3
	}
	historyLimit := deps.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Engine{
		tickets:      deps.TicketRepo,
		messages:     deps.MessageRepo,
		knowledge:    deps.KnowledgeRepo,
		metrics:      deps.MetricRepo,
		bus:          deps.Bus,
		generator:    deps.Generator,
		logger:       deps.Logger,
		searchLimit:  searchLimit,
		historyLimit: historyLimit,
	}
}

// Run processes one customer message and returns the workflow verdict.
func (e *Engine) Run(ctx context.Context, req Request) (Result, error) {
	if verdict := CheckEscalation(req.Message); verdict != nil {
		return e.escalate(ctx, req, verdict)
	}
	return e.respond(ctx, req)
}

func (e *Engine) respond(ctx context.Context, req Request) (Result, error) {
	category := DetectCategory(req.Message)
	priority := DetectPriority(req.Message)

	// Ticket creation precedes any customer-visible action.
	ticket, err := e.tickets.Create(ctx, repository.TicketCreateInput{
		ConversationID: req.ConversationID,
		CustomerID:     req.CustomerID,
		Channel:        req.Channel,
		Subject:        truncate(req.Message, 100),
		Category:       &category,
		Priority:       priority,
	})
	if err != nil {
		return Result{Status: StatusError}, fmt.Errorf("create ticket: %w", err)
	}

	historyContext := e.historyContext(ctx, req.CustomerID)
	results, err := e.knowledge.Search(ctx, req.Message, e.searchLimit)
	if err != nil {
		e.logger.Warn("knowledge base search failed", zap.Error(err))
		results = nil
	}

	response, err := e.generator.Generate(ctx, GenerationInput{
		Message:        req.Message,
		Channel:        req.Channel,
		CustomerName:   req.CustomerName,
		TicketNumber:   ticket.TicketNumber,
		Category:       category,
		SearchContext:  formatter.SearchResults(results),
		HistoryContext: historyContext,
		HasResults:     len(results) > 0,
	})
	if err != nil {
		// Generators fall back internally; an error here means even the
		// fallback path broke.
		return Result{Status: StatusError, TicketNumber: ticket.TicketNumber}, fmt.Errorf("generate response: %w", err)
	}

	return Result{
		Status:       StatusCompleted,
		TicketNumber: ticket.TicketNumber,
		Category:     category,
		Response:     response,
	}, nil
}

func (e *Engine) escalate(ctx context.Context, req Request, verdict *EscalationVerdict) (Result, error) {
	category := domain.CategoryEscalation
	ticket, err := e.tickets.Create(ctx, repository.TicketCreateInput{
		ConversationID: req.ConversationID,
		CustomerID:     req.CustomerID,
		Channel:        req.Channel,
		Subject:        "[ESCALATION] " + truncate(req.Message, 80),
		Category:       &category,
		Priority:       domain.TicketPriorityHigh,
	})
	if err != nil {
		return Result{Status: StatusError}, fmt.Errorf("create escalation ticket: %w", err)
	}

	escalation := domain.Escalation{
		ConversationID: req.ConversationID,
		CustomerID:     req.CustomerID,
		Reason:         verdict.Reason,
		Severity:       verdict.Severity,
		Channel:        req.Channel,
		ContextSummary: truncate(req.Message, 500),
		Status:         "pending",
	}
	if err := e.bus.Publish(ctx, events.TopicEscalations, escalation, req.ConversationID); err != nil {
		return Result{Status: StatusError, TicketNumber: ticket.TicketNumber}, fmt.Errorf("publish escalation: %w", err)
	}

	if err := e.metrics.Record(ctx, req.Channel, domain.MetricEscalation, 1.0, map[string]any{
		"reason":   verdict.Reason,
		"severity": string(verdict.Severity),
	}); err != nil {
		e.logger.Warn("escalation metric write failed", zap.Error(err))
	}

	e.logger.Info("conversation escalated",
		zap.String("reason", verdict.Reason),
		zap.String("severity", string(verdict.Severity)),
		zap.String("channel", string(req.Channel)),
	)

	return Result{
		Status:       StatusEscalated,
		TicketNumber: ticket.TicketNumber,
		Category:     category,
		Escalated:    true,
		Severity:     verdict.Severity,
		Reason:       verdict.Reason,
		Response:     escalationAck,
	}, nil
}

// historyContext fetches prior interactions best-effort; lookups that fail
// render the same sentinel as an empty history.
func (e *Engine) historyContext(ctx context.Context, customerID string) string {
	history, err := e.messages.CustomerHistory(ctx, customerID, e.historyLimit)
	if err != nil {
		e.logger.Warn("customer history lookup failed", zap.Error(err))
		return formatter.NoHistorySentinel
	}
	return formatter.CustomerHistory(history)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
