package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// LogDeliverer stands in for a channel API in local runs: it logs the
// outbound message instead of sending it.
type LogDeliverer struct {
	channel domain.Channel
	logger  *zap.Logger
}

// NewLogDeliverer creates a log-only deliverer for the channel.
func NewLogDeliverer(channel domain.Channel, logger *zap.Logger) *LogDeliverer {
	return &LogDeliverer{channel: channel, logger: logger}
}

// Deliver logs the message.
func (d *LogDeliverer) Deliver(_ context.Context, target, text string) error {
	d.logger.Info("outbound message",
		zap.String("channel", string(d.channel)),
		zap.String("target", target),
		zap.Int("length", len(text)),
	)
	return nil
}
