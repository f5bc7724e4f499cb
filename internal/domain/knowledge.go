package domain

import "time"

// KnowledgeResult is one knowledge-base hit. Relevance is comparable,
// higher is better.
type KnowledgeResult struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Relevance float64
}

// HistoryEntry is one line of cross-channel customer history,
// ordered most-recent-first.
type HistoryEntry struct {
	ConversationID string
	Channel        Channel
	Status         ConversationStatus
	Subject        *string
	SenderType     SenderType
	Content        string
	MessageTime    time.Time
}
