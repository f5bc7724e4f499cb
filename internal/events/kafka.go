package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/config"
)

// KafkaBus is the durable broker-backed bus. Publishes block until the
// broker acknowledges; the hash balancer keeps per-key ordering. Offsets are
// committed only after the handler returns, so delivery is at-least-once and
// handlers must tolerate redelivery.
type KafkaBus struct {
	cfg    config.KafkaConfig
	logger *zap.Logger

	mu      sync.Mutex
	writer  *kafka.Writer
	reader  *kafka.Reader
	started bool
}

// NewKafkaBus creates the bus without opening connections; Start does that.
func NewKafkaBus(cfg config.KafkaConfig, logger *zap.Logger) *KafkaBus {
	return &KafkaBus{cfg: cfg, logger: logger}
}

// Start opens the shared writer. The reader is created lazily by Consume so
// publish-only processes never join the consumer group.
func (b *KafkaBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	b.writer = &kafka.Writer{
		Addr:         kafka.TCP(b.cfg.Brokers()...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	b.started = true
	b.logger.Info("kafka producer started", zap.Strings("brokers", b.cfg.Brokers()))
	return nil
}

// Stop closes the writer and reader.
func (b *KafkaBus) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return nil
	}
	b.started = false

	var errs []error
	if b.writer != nil {
		if err := b.writer.Close(); err != nil {
			errs = append(errs, err)
		}
		b.writer = nil
	}
	if b.reader != nil {
		if err := b.reader.Close(); err != nil {
			errs = append(errs, err)
		}
		b.reader = nil
	}
	b.logger.Info("kafka bus stopped")
	return errors.Join(errs...)
}

// Publish serialises payload as JSON and blocks until the broker
// acknowledges the write.
func (b *KafkaBus) Publish(ctx context.Context, topic string, payload any, key string) error {
	b.mu.Lock()
	writer := b.writer
	b.mu.Unlock()
	if writer == nil {
		return errors.New("kafka bus not started")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: data,
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	b.logger.Debug("published", zap.String("topic", topic), zap.String("key", key))
	return nil
}

// Consume joins the consumer group on every known topic and invokes the
// handler per message. The offset is committed after the handler returns;
// handler errors and panics are logged and the loop continues.
func (b *KafkaBus) Consume(ctx context.Context, handler Handler) error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return errors.New("kafka bus not started")
	}
	if b.reader == nil {
		b.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers:     b.cfg.Brokers(),
			GroupID:     b.cfg.ConsumerGroup,
			GroupTopics: AllTopics(),
			StartOffset: kafka.FirstOffset,
		})
	}
	reader := b.reader
	b.mu.Unlock()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		b.invoke(ctx, handler, msg.Topic, msg.Value)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			b.logger.Error("commit failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func (b *KafkaBus) invoke(ctx context.Context, handler Handler, topic string, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("consumer handler panicked",
				zap.String("topic", topic),
				zap.Any("panic", r),
			)
		}
	}()
	if err := handler(ctx, topic, payload); err != nil {
		b.logger.Error("consumer handler failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}
