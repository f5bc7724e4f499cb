package domain

// EscalationSeverity grades how fast a human needs to pick up the thread.
type EscalationSeverity string

const (
	SeverityP1 EscalationSeverity = "P1"
	SeverityP2 EscalationSeverity = "P2"
	SeverityP3 EscalationSeverity = "P3"
	SeverityP4 EscalationSeverity = "P4"
)

// Escalation is published to the escalations topic for a human-routing
// consumer; it is not persisted by this service.
type Escalation struct {
	ConversationID string             `json:"conversation_id"`
	CustomerID     string             `json:"customer_id"`
	Reason         string             `json:"reason"`
	Severity       EscalationSeverity `json:"severity"`
	Channel        Channel            `json:"channel"`
	ContextSummary string             `json:"context_summary"`
	Status         string             `json:"status"`
}
