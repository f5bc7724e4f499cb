package domain

import "time"

// ConversationStatus enumerates thread lifecycle states.
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationResolved ConversationStatus = "resolved"
	ConversationClosed   ConversationStatus = "closed"
)

// Conversation scopes messages from one customer on one channel.
type Conversation struct {
	ID         string
	CustomerID string
	Channel    Channel
	Status     ConversationStatus
	Subject    *string
	StartedAt  time.Time
}
