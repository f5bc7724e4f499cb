package conversation

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

type fakeConversations struct {
	active  *domain.Conversation
	created []struct {
		customerID string
		channel    domain.Channel
		subject    *string
	}
}

func (f *fakeConversations) GetActive(_ context.Context, _ string, _ domain.Channel) (*domain.Conversation, error) {
	return f.active, nil
}

func (f *fakeConversations) Create(_ context.Context, customerID string, channel domain.Channel, subject *string) (*domain.Conversation, error) {
	f.created = append(f.created, struct {
		customerID string
		channel    domain.Channel
		subject    *string
	}{customerID, channel, subject})
	return &domain.Conversation{
		ID:         "conv-new",
		CustomerID: customerID,
		Channel:    channel,
		Status:     domain.ConversationActive,
		Subject:    subject,
	}, nil
}

func (f *fakeConversations) GetByID(context.Context, string) (*domain.Conversation, error) {
	return nil, nil
}

func TestGetOrCreateReusesActive(t *testing.T) {
	repo := &fakeConversations{active: &domain.Conversation{ID: "conv-active"}}
	tracker := NewTracker(repo, zap.NewNop())

	conv, err := tracker.GetOrCreate(context.Background(), "cust-1", domain.ChannelEmail, "Subject")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if conv.ID != "conv-active" {
		t.Errorf("got %s, want the active conversation", conv.ID)
	}
	if len(repo.created) != 0 {
		t.Error("should not create when an active conversation exists")
	}
}

func TestGetOrCreateOpensNew(t *testing.T) {
	repo := &fakeConversations{}
	tracker := NewTracker(repo, zap.NewNop())

	conv, err := tracker.GetOrCreate(context.Background(), "cust-2", domain.ChannelWhatsApp, "Billing issue")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if conv.ID != "conv-new" {
		t.Errorf("got %s, want a new conversation", conv.ID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d conversations, want 1", len(repo.created))
	}
	if got := repo.created[0]; got.subject == nil || *got.subject != "Billing issue" {
		t.Errorf("subject = %v, want Billing issue", got.subject)
	}
}

func TestGetOrCreateDefaultSubject(t *testing.T) {
	repo := &fakeConversations{}
	tracker := NewTracker(repo, zap.NewNop())

	if _, err := tracker.GetOrCreate(context.Background(), "cust-3", domain.ChannelWebForm, ""); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got := repo.created[0]; got.subject == nil || *got.subject != "Support Request" {
		t.Errorf("subject = %v, want default", got.subject)
	}
}
