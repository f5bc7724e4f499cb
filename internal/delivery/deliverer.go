package delivery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// Deliverer sends text to a channel-native target (email address, phone
// number). Channel API specifics live behind this interface.
type Deliverer interface {
	Deliver(ctx context.Context, target, text string) error
}

// Dispatcher routes outbound text to the deliverer registered for the
// channel, with an optional idempotency guard applied first.
type Dispatcher struct {
	deliverers map[domain.Channel]Deliverer
	guard      *SendGuard
	logger     *zap.Logger
}

// NewDispatcher constructs an empty dispatcher; guard may be nil.
func NewDispatcher(guard *SendGuard, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		deliverers: make(map[domain.Channel]Deliverer),
		guard:      guard,
		logger:     logger,
	}
}

// Register binds a deliverer to a channel.
func (d *Dispatcher) Register(channel domain.Channel, deliverer Deliverer) {
	d.deliverers[channel] = deliverer
}

// Deliver sends text to the target on the channel. An empty target or an
// already-guarded dedupeKey suppresses the send without error.
func (d *Dispatcher) Deliver(ctx context.Context, channel domain.Channel, target, text, dedupeKey string) error {
	if target == "" {
		d.logger.Info("delivery suppressed: no target", zap.String("channel", string(channel)))
		return nil
	}

	deliverer, ok := d.deliverers[channel]
	if !ok {
		return fmt.Errorf("no deliverer registered for channel %q", channel)
	}

	if d.guard != nil && dedupeKey != "" {
		first, err := d.guard.FirstDelivery(ctx, dedupeKey)
		if err != nil {
			// Guard unavailability degrades to at-least-once.
			d.logger.Warn("delivery guard unavailable", zap.Error(err))
		} else if !first {
			d.logger.Info("delivery suppressed: duplicate",
				zap.String("channel", string(channel)),
				zap.String("dedupe_key", dedupeKey),
			)
			return nil
		}
	}

	if err := deliverer.Deliver(ctx, target, text); err != nil {
		return fmt.Errorf("deliver via %s: %w", channel, err)
	}
	d.logger.Info("response delivered", zap.String("channel", string(channel)))
	return nil
}
