package domain

import "time"

// SenderType identifies who authored a message.
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAgent    SenderType = "agent"
)

// Message is an append-only entry in a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderType     SenderType
	Content        string
	Channel        Channel
	Metadata       map[string]any
	CreatedAt      time.Time
}
