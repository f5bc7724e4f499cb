package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/repository"
)

// Resolver maps channel-native identifiers to a stable customer identity,
// creating one on first contact.
type Resolver struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewResolver constructs the resolver.
func NewResolver(customers repository.CustomerRepository, logger *zap.Logger) *Resolver {
	return &Resolver{customers: customers, logger: logger}
}

// Resolve looks up the customer by email, then phone, and creates a new
// record when neither matches. A concurrent duplicate event that loses the
// identifier-uniqueness race converges on the winner's customer via re-fetch.
func (r *Resolver) Resolve(ctx context.Context, event events.InboundEvent) (*domain.Customer, error) {
	if email := event.Email(); email != "" {
		customer, err := r.customers.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find customer by email: %w", err)
		}
		if customer != nil {
			return customer, nil
		}
	}

	if phone := event.Phone(); phone != "" {
		customer, err := r.customers.FindByPhone(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("find customer by phone: %w", err)
		}
		if customer != nil {
			return customer, nil
		}
	}

	customer, err := r.create(ctx, event)
	if err != nil {
		return nil, err
	}
	r.logger.Info("new customer created",
		zap.String("customer_id", customer.ID),
		zap.String("channel", event.Channel),
	)
	return customer, nil
}

func (r *Resolver) create(ctx context.Context, event events.InboundEvent) (*domain.Customer, error) {
	email := optional(event.Email())
	phone := optional(event.Phone())

	customer, err := r.customers.Create(ctx, event.Name(), email, phone, nil)
	if errors.Is(err, repository.ErrIdentifierExists) {
		return r.refetch(ctx, event)
	}
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (r *Resolver) refetch(ctx context.Context, event events.InboundEvent) (*domain.Customer, error) {
	if email := event.Email(); email != "" {
		if customer, err := r.customers.FindByEmail(ctx, email); err == nil && customer != nil {
			return customer, nil
		}
	}
	if phone := event.Phone(); phone != "" {
		if customer, err := r.customers.FindByPhone(ctx, phone); err == nil && customer != nil {
			return customer, nil
		}
	}
	return nil, errors.New("identifier registered but customer not found")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
