package responder

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// Keyword tables are configuration data held as static values so the
// escalation/categorization policy stays testable and tunable without
// touching orchestration logic.

// angerWords indicate an upset customer. Two or more distinct hits escalate.
var angerWords = []string{
	"terrible", "worst", "hate", "stupid", "useless", "garbage", "trash",
}

// escalationTriggers are scanned in order; the first match escalates.
var escalationTriggers = []string{
	"lawsuit", "attorney", "legal action", "liability", "lawyer",
	"refund", "money back", "pricing", "cost", "price",
	"human", "agent", "representative", "real person",
}

var legalTriggers = map[string]bool{
	"lawsuit":      true,
	"attorney":     true,
	"legal action": true,
	"liability":    true,
	"lawyer":       true,
}

// categoryTable is ordered so that score ties resolve deterministically to
// the first-encountered maximum.
var categoryTable = []struct {
	category domain.TicketCategory
	keywords []string
}{
	{domain.CategoryPasswordReset, []string{"password", "reset", "login", "can't log in", "locked out", "forgot"}},
	{domain.CategoryBilling, []string{"bill", "invoice", "charge", "payment", "subscription", "plan", "upgrade", "downgrade"}},
	{domain.CategoryBugReport, []string{"bug", "error", "broken", "not working", "crash", "issue", "glitch"}},
	{domain.CategoryFeatureQuestion, []string{"how to", "how do", "can i", "feature", "where is", "setting"}},
	{domain.CategoryIntegration, []string{"slack", "github", "jira", "zapier", "integrate", "integration", "connect"}},
	{domain.CategoryAPIHelp, []string{"api", "endpoint", "webhook", "token", "rate limit", "authentication"}},
	{domain.CategoryFeedback, []string{"suggestion", "feedback", "improve", "wish", "would be nice"}},
}

var urgentWords = []string{"urgent", "asap", "immediately", "emergency", "critical", "down", "blocked"}
var highWords = []string{"important", "soon", "quickly", "broken"}

// EscalationVerdict describes why a message short-circuits the normal flow.
type EscalationVerdict struct {
	Reason   string
	Severity domain.EscalationSeverity
}

// CheckEscalation applies the shared escalation policy: the anger score
// first, then the ordered trigger list. Returns nil when the normal flow
// should proceed.
func CheckEscalation(message string) *EscalationVerdict {
	lower := strings.ToLower(message)

	angerScore := 0
	for _, word := range angerWords {
		if strings.Contains(lower, word) {
			angerScore++
		}
	}
	if angerScore >= 2 {
		return &EscalationVerdict{
			Reason:   "Aggressive/upset customer detected",
			Severity: domain.SeverityP2,
		}
	}

	for _, trigger := range escalationTriggers {
		if strings.Contains(lower, trigger) {
			severity := domain.SeverityP3
			if legalTriggers[trigger] {
				severity = domain.SeverityP2
			}
			return &EscalationVerdict{
				Reason:   fmt.Sprintf("Escalation keyword detected: '%s'", trigger),
				Severity: severity,
			}
		}
	}

	return nil
}

// DetectCategory scores each category by keyword occurrences and picks the
// highest; ties resolve to the first-encountered maximum in table order.
func DetectCategory(message string) domain.TicketCategory {
	lower := strings.ToLower(message)

	best := domain.CategoryFeatureQuestion
	bestScore := 0
	for _, entry := range categoryTable {
		score := 0
		for _, kw := range entry.keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}
	return best
}

// DetectPriority maps urgency indicators to a priority. Text never yields
// low; that only arrives via explicit submission metadata upstream.
func DetectPriority(message string) domain.TicketPriority {
	lower := strings.ToLower(message)
	for _, word := range urgentWords {
		if strings.Contains(lower, word) {
			return domain.TicketPriorityUrgent
		}
	}
	for _, word := range highWords {
		if strings.Contains(lower, word) {
			return domain.TicketPriorityHigh
		}
	}
	return domain.TicketPriorityMedium
}
