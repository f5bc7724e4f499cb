package events

// Topic names for the support event bus. The processor advances its workflow
// only for messages on TopicTicketsIncoming; channel topics are reserved for
// per-channel consumers.
const (
	TopicTicketsIncoming = "support.tickets.incoming"
	TopicEmailInbound    = "support.channels.email.inbound"
	TopicWhatsAppInbound = "support.channels.whatsapp.inbound"
	TopicWebFormInbound  = "support.channels.webform.inbound"
	TopicEscalations     = "support.escalations"
	TopicMetrics         = "support.metrics"
	TopicDeadLetter      = "support.dlq"
)

// AllTopics lists every topic the bus serves.
func AllTopics() []string {
	return []string{
		TopicTicketsIncoming,
		TopicEmailInbound,
		TopicWhatsAppInbound,
		TopicWebFormInbound,
		TopicEscalations,
		TopicMetrics,
		TopicDeadLetter,
	}
}
