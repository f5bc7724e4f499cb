package conversation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/repository"
)

// Tracker maps (customer, channel) to an open conversation thread. It never
// closes or reopens conversations; resolution is an external concern.
type Tracker struct {
	conversations repository.ConversationRepository
	logger        *zap.Logger
}

// NewTracker constructs the tracker.
func NewTracker(conversations repository.ConversationRepository, logger *zap.Logger) *Tracker {
	return &Tracker{conversations: conversations, logger: logger}
}

// GetOrCreate returns the most recently started active conversation for the
// customer on the channel, creating one when none exists.
func (t *Tracker) GetOrCreate(ctx context.Context, customerID string, channel domain.Channel, subject string) (*domain.Conversation, error) {
	conv, err := t.conversations.GetActive(ctx, customerID, channel)
	if err != nil {
		return nil, fmt.Errorf("get active conversation: %w", err)
	}
	if conv != nil {
		return conv, nil
	}

	if subject == "" {
		subject = "Support Request"
	}
	conv, err = t.conversations.Create(ctx, customerID, channel, &subject)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	t.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID),
		zap.String("channel", string(channel)),
	)
	return conv, nil
}
