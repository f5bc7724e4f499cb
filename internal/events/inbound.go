package events

import (
	"encoding/json"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// InboundEvent is the payload shape on the unified intake topic. Channel
// collectors populate different field aliases (email webhooks use from_*,
// the web form uses customer_*), so accessors resolve them in order.
// EventID is assigned once at publish time and identifies this event across
// broker redeliveries; two submissions with identical text carry distinct ids.
type InboundEvent struct {
	EventID        string `json:"event_id,omitempty"`
	TicketNumber   string `json:"ticket_number,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	CustomerID     string `json:"customer_id,omitempty"`
	Channel        string `json:"channel"`
	Message        string `json:"message,omitempty"`
	Body           string `json:"body,omitempty"`
	Subject        string `json:"subject,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	FromName       string `json:"from_name,omitempty"`
	CustomerEmail  string `json:"customer_email,omitempty"`
	FromEmail      string `json:"from_email,omitempty"`
	CustomerPhone  string `json:"customer_phone,omitempty"`
	FromNumber     string `json:"from_number,omitempty"`
	ThreadID       string `json:"thread_id,omitempty"`
	Category       string `json:"category,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
}

// Text returns the message body regardless of alias used.
func (e InboundEvent) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Body
}

// Email returns the sender email address, if any.
func (e InboundEvent) Email() string {
	if e.CustomerEmail != "" {
		return e.CustomerEmail
	}
	return e.FromEmail
}

// Phone returns the sender phone number, if any.
func (e InboundEvent) Phone() string {
	if e.FromNumber != "" {
		return e.FromNumber
	}
	return e.CustomerPhone
}

// Name returns the sender display name, defaulting to "Customer".
func (e InboundEvent) Name() string {
	if e.CustomerName != "" {
		return e.CustomerName
	}
	if e.FromName != "" {
		return e.FromName
	}
	return "Customer"
}

// SubjectOrDefault returns the subject, defaulting to "Support Request".
func (e InboundEvent) SubjectOrDefault() string {
	if e.Subject != "" {
		return e.Subject
	}
	return "Support Request"
}

// ChannelType returns the typed channel.
func (e InboundEvent) ChannelType() domain.Channel {
	return domain.Channel(e.Channel)
}

// PartitionKey orders events per conversation when known, otherwise per
// sender identity.
func (e InboundEvent) PartitionKey() string {
	if e.ConversationID != "" {
		return e.ConversationID
	}
	if email := e.Email(); email != "" {
		return email
	}
	return e.Phone()
}

// DeadLetter wraps an event whose processing failed unrecoverably.
type DeadLetter struct {
	OriginalMessage json.RawMessage `json:"original_message"`
	Channel         string          `json:"channel"`
	Error           string          `json:"error"`
}
