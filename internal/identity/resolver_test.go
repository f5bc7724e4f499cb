package identity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/repository"
)

type fakeCustomers struct {
	byEmail map[string]*domain.Customer
	byPhone map[string]*domain.Customer

	// missFirstLookups makes that many lookups report not-found before the
	// maps are consulted, simulating a concurrent create racing ahead.
	missFirstLookups int

	createErr error
	created   []string
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if f.missFirstLookups > 0 {
		f.missFirstLookups--
		return nil, nil
	}
	return f.byEmail[email], nil
}

func (f *fakeCustomers) FindByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	if f.missFirstLookups > 0 {
		f.missFirstLookups--
		return nil, nil
	}
	return f.byPhone[phone], nil
}

func (f *fakeCustomers) Create(_ context.Context, name string, email, phone, _ *string) (*domain.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	return &domain.Customer{ID: "new-customer", Name: name, Email: email, Phone: phone}, nil
}

func newTestResolver(customers *fakeCustomers) *Resolver {
	if customers.byEmail == nil {
		customers.byEmail = map[string]*domain.Customer{}
	}
	if customers.byPhone == nil {
		customers.byPhone = map[string]*domain.Customer{}
	}
	return NewResolver(customers, zap.NewNop())
}

func TestResolveFindsByEmailFirst(t *testing.T) {
	customers := &fakeCustomers{
		byEmail: map[string]*domain.Customer{
			"alice@example.com": {ID: "cust-email", Name: "Alice"},
		},
		byPhone: map[string]*domain.Customer{
			"+155500": {ID: "cust-phone", Name: "Alice Phone"},
		},
	}
	resolver := newTestResolver(customers)

	customer, err := resolver.Resolve(context.Background(), events.InboundEvent{
		Channel:       "email",
		CustomerEmail: "alice@example.com",
		CustomerPhone: "+155500",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if customer.ID != "cust-email" {
		t.Errorf("resolved %s, email lookup should win", customer.ID)
	}
	if len(customers.created) != 0 {
		t.Error("existing customer should not trigger a create")
	}
}

func TestResolveFallsBackToPhone(t *testing.T) {
	customers := &fakeCustomers{
		byPhone: map[string]*domain.Customer{
			"+155511": {ID: "cust-phone", Name: "Bob"},
		},
	}
	resolver := newTestResolver(customers)

	customer, err := resolver.Resolve(context.Background(), events.InboundEvent{
		Channel:    "whatsapp",
		FromNumber: "+155511",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if customer.ID != "cust-phone" {
		t.Errorf("resolved %s, want phone match", customer.ID)
	}
}

func TestResolveCreatesWithDefaultName(t *testing.T) {
	customers := &fakeCustomers{}
	resolver := newTestResolver(customers)

	customer, err := resolver.Resolve(context.Background(), events.InboundEvent{
		Channel:   "email",
		FromEmail: "new@example.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if customer.ID != "new-customer" {
		t.Errorf("expected newly created customer, got %s", customer.ID)
	}
	if len(customers.created) != 1 || customers.created[0] != "Customer" {
		t.Errorf("created names = %v, want defaulted name", customers.created)
	}
}

func TestResolveRefetchesOnIdentifierRace(t *testing.T) {
	customers := &fakeCustomers{
		byEmail: map[string]*domain.Customer{
			"winner@example.com": {ID: "cust-winner", Name: "Winner"},
		},
		missFirstLookups: 1,
		createErr:        repository.ErrIdentifierExists,
	}
	resolver := newTestResolver(customers)

	customer, err := resolver.Resolve(context.Background(), events.InboundEvent{
		Channel:       "email",
		CustomerEmail: "winner@example.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if customer.ID != "cust-winner" {
		t.Errorf("resolved %s, should converge on the race winner", customer.ID)
	}
}

func TestResolveCreateFailure(t *testing.T) {
	customers := &fakeCustomers{createErr: errors.New("db down")}
	resolver := newTestResolver(customers)

	if _, err := resolver.Resolve(context.Background(), events.InboundEvent{
		Channel:       "email",
		CustomerEmail: "whoever@example.com",
	}); err == nil {
		t.Fatal("expected error when create fails")
	}
}
