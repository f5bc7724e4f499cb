package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

func testFormatter() Formatter {
	return New("TechCorp", "https://help.techcorp.com")
}

func TestFormatEmail(t *testing.T) {
	f := testFormatter()
	out := f.Format("Here is how to fix it.", domain.ChannelEmail, "Alice", "TKT-20260829-ABC123")

	for _, want := range []string{
		"Dear Alice,",
		"Thank you for reaching out to TechCorp Support.",
		"Here is how to fix it.",
		"Your ticket reference: TKT-20260829-ABC123",
		"Best regards,",
		"TechCorp Support Team",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("email output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatEmailWordCap(t *testing.T) {
	f := testFormatter()
	long := strings.Repeat("word ", 2000)
	out := f.Format(long, domain.ChannelEmail, "Alice", "TKT-1")

	if words := len(strings.Fields(out)); words > 500 {
		t.Errorf("email output has %d words, cap is 500", words)
	}
	if !strings.HasSuffix(out, "...") {
		t.Error("truncated email output should end with ellipsis")
	}
}

func TestFormatWhatsApp(t *testing.T) {
	f := testFormatter()
	out := f.Format("Quick answer.", domain.ChannelWhatsApp, "Bob", "TKT-2")

	if !strings.HasPrefix(out, "Hi Bob! ") {
		t.Errorf("missing greeting prefix: %q", out)
	}
	if !strings.HasSuffix(out, "\n\nRef: TKT-2") {
		t.Errorf("missing ticket footer: %q", out)
	}
}

func TestFormatWhatsAppCharCap(t *testing.T) {
	f := testFormatter()
	long := strings.Repeat("x", 5000)
	out := f.Format(long, domain.ChannelWhatsApp, "Bob", "TKT-20260829-ABC123")

	if len(out) > 300 {
		t.Errorf("whatsapp output is %d chars, cap is 300", len(out))
	}
	// Truncation must eat the body, never the greeting or the reference.
	if !strings.HasPrefix(out, "Hi Bob! ") {
		t.Errorf("greeting lost in truncation: %q", out)
	}
	if !strings.HasSuffix(out, "\n\nRef: TKT-20260829-ABC123") {
		t.Errorf("ticket footer lost in truncation: %q", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("truncated body should carry ellipsis: %q", out)
	}
}

func TestFormatWhatsAppCharCapMultiByte(t *testing.T) {
	f := testFormatter()
	long := strings.Repeat("é", 1000)
	out := f.Format(long, domain.ChannelWhatsApp, "Bob", "TKT-20260829-ABC123")

	if !utf8.ValidString(out) {
		t.Fatalf("truncation produced invalid UTF-8: %q", out)
	}
	if n := utf8.RuneCountInString(out); n > 300 {
		t.Errorf("whatsapp output is %d runes, cap is 300", n)
	}
	if !strings.HasPrefix(out, "Hi Bob! ") {
		t.Errorf("greeting lost in truncation: %q", out)
	}
	if !strings.HasSuffix(out, "\n\nRef: TKT-20260829-ABC123") {
		t.Errorf("ticket footer lost in truncation: %q", out)
	}
}

func TestFormatWebForm(t *testing.T) {
	f := testFormatter()
	out := f.Format("Answer body.", domain.ChannelWebForm, "Carol", "TKT-3")

	for _, want := range []string{
		"Hello Carol,",
		"Answer body.",
		"Ticket Reference: TKT-3",
		"https://help.techcorp.com",
		"— TechCorp Support",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("web form output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatWebFormWordCap(t *testing.T) {
	f := testFormatter()
	long := strings.Repeat("word ", 1000)
	out := f.Format(long, domain.ChannelWebForm, "Carol", "TKT-3")

	if words := len(strings.Fields(out)); words > 300 {
		t.Errorf("web form output has %d words, cap is 300", words)
	}
}

func TestFormatUnknownChannelPassthrough(t *testing.T) {
	f := testFormatter()
	if out := f.Format("raw text", domain.Channel("telegram"), "Dan", "TKT-4"); out != "raw text" {
		t.Errorf("unknown channel should pass through, got %q", out)
	}
}

func TestFormatIsPure(t *testing.T) {
	f := testFormatter()
	for _, channel := range []domain.Channel{domain.ChannelEmail, domain.ChannelWhatsApp, domain.ChannelWebForm} {
		first := f.Format("same input", channel, "Eve", "TKT-5")
		for i := 0; i < 10; i++ {
			if got := f.Format("same input", channel, "Eve", "TKT-5"); got != first {
				t.Fatalf("%s: output changed between identical calls", channel)
			}
		}
	}
}
