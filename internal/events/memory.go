package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const memoryQueueDepth = 256

// MemoryBus is the in-process fallback backend: one FIFO queue per topic,
// one perpetual drain goroutine per topic once Consume is called. Stop
// cancels the loops and drops undelivered messages — acceptable only for
// single-instance local runs.
type MemoryBus struct {
	logger *zap.Logger

	mu      sync.Mutex
	queues  map[string]chan []byte
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewMemoryBus creates the fallback bus.
func NewMemoryBus(logger *zap.Logger) *MemoryBus {
	return &MemoryBus{
		logger: logger,
		queues: make(map[string]chan []byte),
	}
}

// Start marks the bus as running.
func (b *MemoryBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
	b.logger.Info("in-memory event bus started")
	return nil
}

// Stop cancels drain loops and drops whatever is still queued.
func (b *MemoryBus) Stop() error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = false
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.wg.Wait()

	b.mu.Lock()
	b.queues = make(map[string]chan []byte)
	b.mu.Unlock()

	b.logger.Info("in-memory event bus stopped")
	return nil
}

// Publish enqueues the payload on the topic queue, preserving FIFO order.
func (b *MemoryBus) Publish(ctx context.Context, topic string, payload any, key string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}

	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return errors.New("event bus not started")
	}
	queue := b.queue(topic)
	b.mu.Unlock()

	select {
	case queue <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume spawns one drain loop per known topic. Handler errors and panics
// are logged per message and never stop a loop.
func (b *MemoryBus) Consume(ctx context.Context, handler Handler) error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return errors.New("event bus not started")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	for _, topic := range AllTopics() {
		queue := b.queue(topic)
		b.wg.Add(1)
		go b.drain(loopCtx, topic, queue, handler)
	}
	b.mu.Unlock()

	b.logger.Info("in-memory event bus consuming", zap.Strings("topics", AllTopics()))
	<-loopCtx.Done()
	b.wg.Wait()
	return nil
}

// queue must be called with mu held.
func (b *MemoryBus) queue(topic string) chan []byte {
	queue, ok := b.queues[topic]
	if !ok {
		queue = make(chan []byte, memoryQueueDepth)
		b.queues[topic] = queue
	}
	return queue
}

func (b *MemoryBus) drain(ctx context.Context, topic string, queue chan []byte, handler Handler) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-queue:
			b.invoke(ctx, handler, topic, payload)
		}
	}
}

func (b *MemoryBus) invoke(ctx context.Context, handler Handler, topic string, payload []byte) {
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
