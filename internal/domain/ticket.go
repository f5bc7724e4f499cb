package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketCategory enumerates the fixed issue taxonomy.
type TicketCategory string

const (
	CategoryPasswordReset   TicketCategory = "password_reset"
	CategoryBilling         TicketCategory = "billing"
	CategoryBugReport       TicketCategory = "bug_report"
	CategoryFeatureQuestion TicketCategory = "feature_question"
	CategoryIntegration     TicketCategory = "integration"
	CategoryAPIHelp         TicketCategory = "api_help"
	CategoryFeedback        TicketCategory = "feedback"
	CategoryEscalation      TicketCategory = "escalation"
	CategoryOther           TicketCategory = "other"
)

// Ticket tracks one support interaction. A ticket is always created before
// any customer-facing reply is sent.
type Ticket struct {
	ID             string
	TicketNumber   string
	ConversationID string
	CustomerID     string
	Channel        Channel
	Subject        string
	Category       *TicketCategory
	Priority       TicketPriority
	Status         TicketStatus
	Resolution     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ResolvedAt     *time.Time
}
