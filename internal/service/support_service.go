package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/repository"
	apperrors "github.com/spec-kit/support-pipeline/pkg/util"
)

// SupportService serves read paths and the external status-update path:
// ticket status, customer lookup, conversation views, channel metrics.
type SupportService struct {
	customers     repository.CustomerRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	tickets       repository.TicketRepository
	metrics       repository.MetricRepository
}

// SupportDependencies bundles repositories for the support service.
type SupportDependencies struct {
	CustomerRepo     repository.CustomerRepository
	ConversationRepo repository.ConversationRepository
	MessageRepo      repository.MessageRepository
	TicketRepo       repository.TicketRepository
	MetricRepo       repository.MetricRepository
}

// NewSupportService constructs the service.
func NewSupportService(deps SupportDependencies) *SupportService {
	return &SupportService{
		customers:     deps.CustomerRepo,
		conversations: deps.ConversationRepo,
		messages:      deps.MessageRepo,
		tickets:       deps.TicketRepo,
		metrics:       deps.MetricRepo,
	}
}

// TicketByNumber fetches a ticket by its customer-facing reference.
func (s *SupportService) TicketByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	ticketNumber = strings.TrimSpace(ticketNumber)
	if ticketNumber == "" {
		return nil, apperrors.NewValidationError("ticket number required", nil)
	}
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
	}
	return ticket, nil
}

var allowedStatusUpdates = map[domain.TicketStatus]bool{
	domain.TicketStatusOpen:       true,
	domain.TicketStatusInProgress: true,
	domain.TicketStatusResolved:   true,
	domain.TicketStatusClosed:     true,
}

// UpdateTicketStatus transitions a ticket, stamping resolution metadata when
// it reaches a terminal state. Resolution happens outside the pipeline, so
// this is the only write path the API exposes for tickets.
func (s *SupportService) UpdateTicketStatus(ctx context.Context, ticketNumber string, status domain.TicketStatus, resolution *string) (*domain.Ticket, error) {
	if !allowedStatusUpdates[status] {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	ticket, err := s.TicketByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	updated, err := s.tickets.UpdateStatus(ctx, ticket.ID, status, resolution)
	if err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	return updated, nil
}

// LookupCustomer finds a customer by email or phone.
func (s *SupportService) LookupCustomer(ctx context.Context, email, phone string) (*domain.Customer, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewValidationError("email or phone required", nil)
	}

	var customer *domain.Customer
	var err error
	if email != "" {
		customer, err = s.customers.FindByEmail(ctx, email)
	} else {
		customer, err = s.customers.FindByPhone(ctx, phone)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NewNotFound("customer", nil)
	}
	return customer, nil
}

// ConversationView returns a conversation with its full message transcript.
func (s *SupportService) ConversationView(ctx context.Context, conversationID string) (*domain.Conversation, []domain.Message, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get conversation: %w", err)
	}
	if conv == nil {
		return nil, nil, apperrors.NewNotFound("conversation", map[string]any{"conversation_id": conversationID})
	}
	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}
	return conv, msgs, nil
}

// ChannelMetrics aggregates pipeline measurements per channel and metric
// type over the trailing window.
func (s *SupportService) ChannelMetrics(ctx context.Context, channel *domain.Channel, hours int) ([]domain.ChannelMetric, error) {
	if channel != nil && !channel.Known() {
		return nil, apperrors.NewValidationError("unknown channel", map[string]any{"channel": *channel})
	}
	results, err := s.metrics.ChannelMetrics(ctx, channel, hours)
	if err != nil {
		return nil, fmt.Errorf("aggregate metrics: %w", err)
	}
	return results, nil
}
