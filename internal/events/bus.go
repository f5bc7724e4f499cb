package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/config"
)

// Handler is invoked once per delivered message. A non-nil error marks the
// message as failed for backends that track delivery, but never stops the
// consume loop.
type Handler func(ctx context.Context, topic string, payload []byte) error

// Bus is the pluggable pub/sub abstraction. The Kafka backend provides
// durability, at-least-once delivery, and per-partition-key ordering; the
// in-memory backend is a FIFO-per-topic fallback for single-instance local
// runs with no durability guarantee.
type Bus interface {
	Start(ctx context.Context) error
	Stop() error
	Publish(ctx context.Context, topic string, payload any, key string) error
	Consume(ctx context.Context, handler Handler) error
}

// NewBus selects the backend from configuration. The processor works
// unmodified against either.
func NewBus(cfg *config.Config, logger *zap.Logger) Bus {
	if cfg.UseKafka() {
		logger.Info("event bus using kafka",
			zap.String("bootstrap_servers", cfg.Kafka.BootstrapServers),
			zap.String("consumer_group", cfg.Kafka.ConsumerGroup),
		)
		return NewKafkaBus(cfg.Kafka, logger)
	}
	logger.Info("event bus using in-memory fallback")
	return NewMemoryBus(logger)
}
