package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

func TestSearchResults(t *testing.T) {
	if got := SearchResults(nil); got != NoResultsSentinel {
		t.Errorf("empty results = %q, want sentinel", got)
	}

	out := SearchResults([]domain.KnowledgeResult{
		{Title: "Resetting your password", Content: "Step one...", Relevance: 0.91},
		{Title: "Account recovery", Content: strings.Repeat("c", 600), Relevance: 0.42},
	})
	if !strings.Contains(out, "[1] Resetting your password (relevance: 0.91)") {
		t.Errorf("missing first entry header:\n%s", out)
	}
	if !strings.Contains(out, "[2] Account recovery (relevance: 0.42)") {
		t.Errorf("missing second entry header:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("c", 500)+"...") {
		t.Error("long content should be truncated to 500 chars with ellipsis")
	}
	if strings.Contains(out, strings.Repeat("c", 501)) {
		t.Error("content exceeded 500-char truncation")
	}
}

func TestCustomerHistory(t *testing.T) {
	if got := CustomerHistory(nil); got != NoHistorySentinel {
		t.Errorf("empty history = %q, want sentinel", got)
	}

	subject := "Login trouble"
	when := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	out := CustomerHistory([]domain.HistoryEntry{
		{
			Channel:     domain.ChannelEmail,
			Subject:     &subject,
			SenderType:  domain.SenderCustomer,
			Content:     strings.Repeat("m", 250),
			MessageTime: when,
		},
	})
	if !strings.HasPrefix(out, "Previous interactions:") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "[email] Login trouble (2026-08-20 14:30) customer:") {
		t.Errorf("missing entry line:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("m", 201)) {
		t.Error("content exceeded 200-char truncation")
	}
}
