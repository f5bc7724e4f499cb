package responder

import (
	"testing"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

func TestCheckEscalation(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		escalate bool
		severity domain.EscalationSeverity
		reason   string
	}{
		{
			name:     "two anger words",
			message:  "This product is terrible and completely useless",
			escalate: true,
			severity: domain.SeverityP2,
			reason:   "Aggressive/upset customer detected",
		},
		{
			name:     "three anger words",
			message:  "terrible garbage hate this product",
			escalate: true,
			severity: domain.SeverityP2,
			reason:   "Aggressive/upset customer detected",
		},
		{
			name:     "single anger word does not escalate",
			message:  "The export screen looks terrible on mobile",
			escalate: false,
		},
		{
			name:     "legal threat",
			message:  "I will file a lawsuit if this continues",
			escalate: true,
			severity: domain.SeverityP2,
			reason:   "Escalation keyword detected: 'lawsuit'",
		},
		{
			name:     "attorney mention",
			message:  "My attorney will be in touch",
			escalate: true,
			severity: domain.SeverityP2,
			reason:   "Escalation keyword detected: 'attorney'",
		},
		{
			name:     "pricing question",
			message:  "What is the pricing for enterprise?",
			escalate: true,
			severity: domain.SeverityP3,
			reason:   "Escalation keyword detected: 'pricing'",
		},
		{
			name:     "refund request",
			message:  "I want my money back now",
			escalate: true,
			severity: domain.SeverityP3,
			reason:   "Escalation keyword detected: 'money back'",
		},
		{
			name:     "human agent request",
			message:  "Let me talk to a real person",
			escalate: true,
			severity: domain.SeverityP3,
			reason:   "Escalation keyword detected: 'real person'",
		},
		{
			name:     "ordinary question",
			message:  "How do I configure two-factor auth?",
			escalate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := CheckEscalation(tt.message)
			if !tt.escalate {
				if verdict != nil {
					t.Fatalf("expected no escalation, got %+v", verdict)
				}
				return
			}
			if verdict == nil {
				t.Fatal("expected escalation, got nil")
			}
			if verdict.Severity != tt.severity {
				t.Errorf("severity = %s, want %s", verdict.Severity, tt.severity)
			}
			if verdict.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", verdict.Reason, tt.reason)
			}
		})
	}
}

func TestCheckEscalationHumanRequestMatch(t *testing.T) {
	// "real person" appears after "human" in the trigger list; the ordered
	// scan must still report a match for a message containing only the later
	// phrase.
	verdict := CheckEscalation("Can I speak with a representative please")
	if verdict == nil {
		t.Fatal("expected escalation")
	}
	if verdict.Severity != domain.SeverityP3 {
		t.Errorf("severity = %s, want %s", verdict.Severity, domain.SeverityP3)
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    domain.TicketCategory
	}{
		{"password reset", "I forgot my password and can't log in", domain.CategoryPasswordReset},
		{"billing", "My invoice shows a double charge on my subscription", domain.CategoryBilling},
		{"bug report", "The dashboard crashes with an error every time", domain.CategoryBugReport},
		{"integration", "How do we connect the Slack integration?", domain.CategoryIntegration},
		{"api help", "The webhook endpoint rejects my token", domain.CategoryAPIHelp},
		{"feedback", "Just some feedback: a dark mode would be nice", domain.CategoryFeedback},
		{"no keywords defaults", "hello there", domain.CategoryFeatureQuestion},
		{"tie resolves to earlier table entry", "invoice issue", domain.CategoryBilling},
		{"occurrences outweigh presence", "payment fails with error after error", domain.CategoryBugReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCategory(tt.message); got != tt.want {
				t.Errorf("DetectCategory(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

func TestDetectCategoryDeterministic(t *testing.T) {
	message := "error with invoice payment bug charge"
	first := DetectCategory(message)
	for i := 0; i < 100; i++ {
		if got := DetectCategory(message); got != first {
			t.Fatalf("run %d: got %s, first run gave %s", i, got, first)
		}
	}
}

func TestDetectPriority(t *testing.T) {
	tests := []struct {
		message string
		want    domain.TicketPriority
	}{
		{"The whole system is down, this is urgent", domain.TicketPriorityUrgent},
		{"Production is blocked for our team", domain.TicketPriorityUrgent},
		{"This is important, please respond soon", domain.TicketPriorityHigh},
		{"Just wondering about the release schedule", domain.TicketPriorityMedium},
	}

	for _, tt := range tests {
		if got := DetectPriority(tt.message); got != tt.want {
			t.Errorf("DetectPriority(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}
