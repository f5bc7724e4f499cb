package delivery

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

type recordingDeliverer struct {
	targets []string
	texts   []string
	err     error
}

func (d *recordingDeliverer) Deliver(_ context.Context, target, text string) error {
	if d.err != nil {
		return d.err
	}
	d.targets = append(d.targets, target)
	d.texts = append(d.texts, text)
	return nil
}

func TestDispatcherRoutesByChannel(t *testing.T) {
	email := &recordingDeliverer{}
	whatsapp := &recordingDeliverer{}
	dispatcher := NewDispatcher(nil, zap.NewNop())
	dispatcher.Register(domain.ChannelEmail, email)
	dispatcher.Register(domain.ChannelWhatsApp, whatsapp)

	if err := dispatcher.Deliver(context.Background(), domain.ChannelEmail, "a@example.com", "hello", ""); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(email.targets) != 1 || email.targets[0] != "a@example.com" {
		t.Errorf("email deliverer targets = %v", email.targets)
	}
	if len(whatsapp.targets) != 0 {
		t.Errorf("whatsapp deliverer should be untouched, got %v", whatsapp.targets)
	}
}

func TestDispatcherSuppressesEmptyTarget(t *testing.T) {
	email := &recordingDeliverer{}
	dispatcher := NewDispatcher(nil, zap.NewNop())
	dispatcher.Register(domain.ChannelEmail, email)

	if err := dispatcher.Deliver(context.Background(), domain.ChannelEmail, "", "hello", ""); err != nil {
		t.Fatalf("empty target should suppress, not fail: %v", err)
	}
	if len(email.targets) != 0 {
		t.Errorf("nothing should be delivered, got %v", email.targets)
	}
}

func TestDispatcherUnregisteredChannel(t *testing.T) {
	dispatcher := NewDispatcher(nil, zap.NewNop())
	if err := dispatcher.Deliver(context.Background(), domain.ChannelWebForm, "b@example.com", "hello", ""); err == nil {
		t.Fatal("expected error for unregistered channel")
	}
}

func TestDispatcherWrapsDeliveryError(t *testing.T) {
	email := &recordingDeliverer{err: errors.New("smtp refused")}
	dispatcher := NewDispatcher(nil, zap.NewNop())
	dispatcher.Register(domain.ChannelEmail, email)

	err := dispatcher.Deliver(context.Background(), domain.ChannelEmail, "c@example.com", "hello", "")
	if err == nil {
		t.Fatal("expected delivery error to propagate")
	}
}
