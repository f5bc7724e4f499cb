package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/formatter"
	"github.com/spec-kit/support-pipeline/internal/repository"
	"github.com/spec-kit/support-pipeline/internal/responder"
)

const apologyText = "We apologize for the inconvenience. We encountered an issue processing your request. A team member has been notified and will follow up with you shortly."

// IdentityResolver maps an inbound event to a stable customer.
type IdentityResolver interface {
	Resolve(ctx context.Context, event events.InboundEvent) (*domain.Customer, error)
}

// ConversationTracker finds or starts the customer's open thread on a channel.
type ConversationTracker interface {
	GetOrCreate(ctx context.Context, customerID string, channel domain.Channel, subject string) (*domain.Conversation, error)
}

// Dispatcher sends formatted text out on a channel.
type Dispatcher interface {
	Deliver(ctx context.Context, channel domain.Channel, target, text, dedupeKey string) error
}

// Processor consumes the unified intake topic and drives each event through
// identity resolution, conversation tracking, response generation, and
// delivery. Events that fail unrecoverably go to the dead-letter topic and
// the customer receives an apology instead of silence.
type Processor struct {
	bus       events.Bus
	resolver  IdentityResolver
	tracker   ConversationTracker
	responder responder.Responder
	messages  repository.MessageRepository
	metrics   repository.MetricRepository
	formatter formatter.Formatter
	delivery  Dispatcher
	logger    *zap.Logger
	grace     time.Duration

	inflight chan struct{}
}

// Options bundles the processor's collaborators.
type Options struct {
	Bus           events.Bus
	Resolver      IdentityResolver
	Tracker       ConversationTracker
	Responder     responder.Responder
	Messages      repository.MessageRepository
	Metrics       repository.MetricRepository
	Formatter     formatter.Formatter
	Delivery      Dispatcher
	Logger        *zap.Logger
	ShutdownGrace time.Duration
}

// New constructs the processor.
func New(opts Options) *Processor {
	grace := opts.ShutdownGrace
	if grace <= 0 {
		grace = 30 * time.Second
	}
	return &Processor{
		bus:       opts.Bus,
		resolver:  opts.Resolver,
		tracker:   opts.Tracker,
		responder: opts.Responder,
		messages:  opts.Messages,
		metrics:   opts.Metrics,
		formatter: opts.Formatter,
		delivery:  opts.Delivery,
		logger:    opts.Logger,
		grace:     grace,
		inflight:  make(chan struct{}, 1),
	}
}

// Start brings the bus up and runs the consume loop in the background.
func (p *Processor) Start(ctx context.Context) error {
	if err := p.bus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	go func() {
		if err := p.bus.Consume(ctx, p.Handle); err != nil {
			p.logger.Error("consume loop exited", zap.Error(err))
		}
	}()
	p.logger.Info("processor started", zap.String("topic", events.TopicTicketsIncoming))
	return nil
}

// Stop waits up to the shutdown grace for the in-flight event to finish,
// then stops the bus.
func (p *Processor) Stop() error {
	deadline := time.After(p.grace)
	select {
	case p.inflight <- struct{}{}:
		<-p.inflight
	case <-deadline:
		p.logger.Warn("shutdown grace expired with work in flight")
	}
	return p.bus.Stop()
}

// Handle is the bus handler. Only the unified intake topic advances the
// workflow; everything else is acknowledged untouched.
func (p *Processor) Handle(ctx context.Context, topic string, payload []byte) error {
	if topic != events.TopicTicketsIncoming {
		return nil
	}

	p.inflight <- struct{}{}
	defer func() { <-p.inflight }()

	var event events.InboundEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		p.logger.Error("unparseable intake event", zap.Error(err))
		p.deadLetter(ctx, payload, event, fmt.Errorf("unmarshal event: %w", err))
		return nil
	}

	if err := p.process(ctx, event, payload); err != nil {
		p.logger.Error("event processing failed",
			zap.String("channel", event.Channel),
			zap.Error(err),
		)
		p.deadLetter(ctx, payload, event, err)
	}
	return nil
}

func (p *Processor) process(ctx context.Context, event events.InboundEvent, payload []byte) error {
	start := time.Now()
	channel := event.ChannelType()

	customer, err := p.resolver.Resolve(ctx, event)
	if err != nil {
		return fmt.Errorf("resolve identity: %w", err)
	}

	conv, err := p.tracker.GetOrCreate(ctx, customer.ID, channel, event.SubjectOrDefault())
	if err != nil {
		return fmt.Errorf("track conversation: %w", err)
	}

	inbound := &domain.Message{
		ConversationID: conv.ID,
		SenderType:     domain.SenderCustomer,
		Content:        event.Text(),
		Channel:        channel,
		Metadata:       map[string]any{"source_topic": events.TopicTicketsIncoming},
	}
	if err := p.messages.Create(ctx, inbound); err != nil {
		return fmt.Errorf("persist inbound message: %w", err)
	}

	result, err := p.responder.Run(ctx, responder.Request{
		Message:        event.Text(),
		Channel:        channel,
		CustomerName:   event.Name(),
		CustomerID:     customer.ID,
		ConversationID: conv.ID,
	})
	if err != nil {
		return fmt.Errorf("run responder: %w", err)
	}

	p.persistResponse(ctx, conv.ID, channel, result)
	p.deliverResponse(ctx, event, conv.ID, result)

	if err := p.metrics.Record(ctx, channel, domain.MetricResponseTime, time.Since(start).Seconds(), map[string]any{
		"ticket_number": result.TicketNumber,
		"escalated":     result.Escalated,
		"category":      string(result.Category),
	}); err != nil {
		p.logger.Warn("response time metric failed", zap.Error(err))
	}

	p.logger.Info("event processed",
		zap.String("ticket_number", result.TicketNumber),
		zap.String("conversation_id", conv.ID),
		zap.String("channel", string(channel)),
		zap.Bool("escalated", result.Escalated),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// persistResponse records the agent's reply in the conversation. Failures
// here are logged, not fatal: the response already exists and the ticket is
// already on record.
func (p *Processor) persistResponse(ctx context.Context, conversationID string, channel domain.Channel, result responder.Result) {
	if result.Response == "" {
		return
	}
	msg := &domain.Message{
		ConversationID: conversationID,
		SenderType:     domain.SenderAgent,
		Content:        result.Response,
		Channel:        channel,
		Metadata: map[string]any{
			"ticket_number": result.TicketNumber,
			"category":      string(result.Category),
			"escalated":     result.Escalated,
		},
	}
	if err := p.messages.Create(ctx, msg); err != nil {
		p.logger.Warn("persist agent response failed", zap.Error(err))
	}
}

// deliverResponse formats and sends the reply. Escalated runs skip delivery:
// the human-routing consumer of the escalation topic owns customer contact
// from that point. An empty response is suppressed outright.
func (p *Processor) deliverResponse(ctx context.Context, event events.InboundEvent, conversationID string, result responder.Result) {
	if result.Escalated || result.Response == "" {
		return
	}
	channel := event.ChannelType()
	target := deliveryTarget(event)
	formatted := p.formatter.Format(result.Response, channel, event.Name(), result.TicketNumber)

	// The guard keys on the event id so only broker redeliveries of this
	// exact event are suppressed. A customer repeating the same text is a
	// new event with a new id and always gets a reply. Events without an
	// id skip the guard and stay at-least-once.
	if err := p.delivery.Deliver(ctx, channel, target, formatted, event.EventID); err != nil {
		p.logger.Warn("response delivery failed",
			zap.String("channel", string(channel)),
			zap.Error(err),
		)
		return
	}

	if err := p.metrics.Record(ctx, channel, domain.MetricResponse, 1.0, map[string]any{
		"ticket_number":   result.TicketNumber,
		"response_length": len(formatted),
	}); err != nil {
		p.logger.Warn("response metric failed", zap.Error(err))
	}
}

// deadLetter publishes the failed event for later recovery, tells the
// customer something went wrong, and records the failure. Each step is
// best-effort; a broken pipeline must not lose the original payload silently.
func (p *Processor) deadLetter(ctx context.Context, payload []byte, event events.InboundEvent, cause error) {
	letter := events.DeadLetter{
		OriginalMessage: json.RawMessage(payload),
		Channel:         event.Channel,
		Error:           cause.Error(),
	}
	if err := p.bus.Publish(ctx, events.TopicDeadLetter, letter, event.PartitionKey()); err != nil {
		p.logger.Error("dead letter publish failed", zap.Error(err))
	}

	channel := event.ChannelType()
	if target := deliveryTarget(event); target != "" {
		apology := p.formatter.Format(apologyText, channel, event.Name(), "")
		key := ""
		if event.EventID != "" {
			key = "apology:" + event.EventID
		}
		if err := p.delivery.Deliver(ctx, channel, target, apology, key); err != nil {
			p.logger.Warn("apology delivery failed", zap.Error(err))
		}
	}

	if err := p.metrics.Record(ctx, channel, domain.MetricError, 1, map[string]any{
		"error": cause.Error(),
	}); err != nil {
		p.logger.Warn("error metric failed", zap.Error(err))
	}
}

// deliveryTarget picks the channel-native address from the event.
func deliveryTarget(event events.InboundEvent) string {
	switch event.ChannelType() {
	case domain.ChannelWhatsApp:
		return event.Phone()
	default:
		return event.Email()
	}
}
