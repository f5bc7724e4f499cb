package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/repository"
	apperrors "github.com/spec-kit/support-pipeline/pkg/util"
)

// IdentityResolver maps an inbound event to a stable customer.
type IdentityResolver interface {
	Resolve(ctx context.Context, event events.InboundEvent) (*domain.Customer, error)
}

// ConversationTracker finds or starts the customer's open thread on a channel.
type ConversationTracker interface {
	GetOrCreate(ctx context.Context, customerID string, channel domain.Channel, subject string) (*domain.Conversation, error)
}

// IntakeService handles validated web form submissions. Unlike webhook-fed
// channels, the form path pre-creates the customer, conversation, message,
// and ticket synchronously so the submitter leaves with a reference number.
type IntakeService struct {
	resolver IdentityResolver
	tracker  ConversationTracker
	messages repository.MessageRepository
	tickets  repository.TicketRepository
	bus      events.Bus
	logger   *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	Resolver    IdentityResolver
	Tracker     ConversationTracker
	MessageRepo repository.MessageRepository
	TicketRepo  repository.TicketRepository
	Bus         events.Bus
	Logger      *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		resolver: deps.Resolver,
		tracker:  deps.Tracker,
		messages: deps.MessageRepo,
		tickets:  deps.TicketRepo,
		bus:      deps.Bus,
		logger:   deps.Logger,
	}
}

// WebFormSubmission is a validated support form payload.
type WebFormSubmission struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Category domain.TicketCategory
	Priority domain.TicketPriority
}

// IntakeReceipt is what the submitter takes away.
type IntakeReceipt struct {
	TicketNumber      string
	ConversationID    string
	Status            string
	EstimatedResponse string
	SubmittedAt       time.Time
}

var validPriorities = map[domain.TicketPriority]bool{
	domain.TicketPriorityLow:    true,
	domain.TicketPriorityMedium: true,
	domain.TicketPriorityHigh:   true,
	domain.TicketPriorityUrgent: true,
}

var validCategories = map[domain.TicketCategory]bool{
	domain.CategoryPasswordReset:   true,
	domain.CategoryBilling:         true,
	domain.CategoryBugReport:       true,
	domain.CategoryFeatureQuestion: true,
	domain.CategoryIntegration:     true,
	domain.CategoryAPIHelp:         true,
	domain.CategoryFeedback:        true,
	domain.CategoryOther:           true,
}

var estimatedResponseTimes = map[domain.TicketPriority]string{
	domain.TicketPriorityUrgent: "1 hour",
	domain.TicketPriorityHigh:   "4 hours",
	domain.TicketPriorityMedium: "12 hours",
	domain.TicketPriorityLow:    "24 hours",
}

// Submit validates the form, persists the intake records, and hands the
// submission to the pipeline. The event goes to both the web form channel
// topic and the unified intake topic, keyed by conversation so replies stay
// ordered per thread.
func (s *IntakeService) Submit(ctx context.Context, form WebFormSubmission) (*IntakeReceipt, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if form.Email == "" || !strings.Contains(form.Email, "@") {
		return nil, apperrors.NewValidationError("valid email required", nil)
	}
	if form.Message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if form.Name == "" {
		form.Name = "Customer"
	}
	if form.Subject == "" {
		form.Subject = "Support Request"
	}
	if form.Priority == "" || !validPriorities[form.Priority] {
		form.Priority = domain.TicketPriorityMedium
	}
	category := form.Category
	if category == "" || !validCategories[category] {
		category = domain.CategoryOther
	}

	customer, err := s.resolver.Resolve(ctx, events.InboundEvent{
		Channel:       string(domain.ChannelWebForm),
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	conv, err := s.tracker.GetOrCreate(ctx, customer.ID, domain.ChannelWebForm, form.Subject)
	if err != nil {
		return nil, fmt.Errorf("open conversation: %w", err)
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderType:     domain.SenderCustomer,
		Content:        form.Message,
		Channel:        domain.ChannelWebForm,
		Metadata:       map[string]any{"subject": form.Subject, "source": "web_form"},
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	ticket, err := s.tickets.Create(ctx, repository.TicketCreateInput{
		ConversationID: conv.ID,
		CustomerID:     customer.ID,
		Channel:        domain.ChannelWebForm,
		Subject:        form.Subject,
		Category:       &category,
		Priority:       form.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	event := events.InboundEvent{
		EventID:        uuid.NewString(),
		TicketNumber:   ticket.TicketNumber,
		ConversationID: conv.ID,
		CustomerID:     customer.ID,
		Channel:        string(domain.ChannelWebForm),
		Message:        form.Message,
		Subject:        form.Subject,
		CustomerName:   form.Name,
		CustomerEmail:  form.Email,
		Category:       string(category),
		Priority:       string(form.Priority),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.bus.Publish(ctx, events.TopicWebFormInbound, event, conv.ID); err != nil {
		s.logger.Warn("web form channel topic publish failed", zap.Error(err))
	}
	if err := s.bus.Publish(ctx, events.TopicTicketsIncoming, event, conv.ID); err != nil {
		return nil, fmt.Errorf("enqueue submission: %w", err)
	}

	s.logger.Info("web form submission accepted",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("conversation_id", conv.ID),
		zap.String("priority", string(form.Priority)),
	)

	return &IntakeReceipt{
		TicketNumber:      ticket.TicketNumber,
		ConversationID:    conv.ID,
		Status:            "received",
		EstimatedResponse: estimatedResponseTimes[form.Priority],
		SubmittedAt:       ticket.CreatedAt,
	}, nil
}
