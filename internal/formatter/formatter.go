package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

const (
	emailMaxWords    = 500
	whatsAppMaxChars = 300
	webFormMaxWords  = 300
)

// Formatter renders response text into a channel-appropriate envelope.
// Format is a pure function of its inputs.
type Formatter struct {
	Company       string
	HelpCenterURL string
}

// New creates a formatter with the given branding.
func New(company, helpCenterURL string) Formatter {
	return Formatter{Company: company, HelpCenterURL: helpCenterURL}
}

// Format applies the channel's envelope and length limit. Unknown channels
// pass the response through unmodified.
func (f Formatter) Format(response string, channel domain.Channel, customerName, ticketNumber string) string {
	switch channel {
	case domain.ChannelEmail:
		return f.formatEmail(response, customerName, ticketNumber)
	case domain.ChannelWhatsApp:
		return f.formatWhatsApp(response, customerName, ticketNumber)
	case domain.ChannelWebForm:
		return f.formatWebForm(response, customerName, ticketNumber)
	}
	return response
}

func (f Formatter) formatEmail(response, customerName, ticketNumber string) string {
	parts := []string{
		fmt.Sprintf("Dear %s,", customerName),
		"",
		fmt.Sprintf("Thank you for reaching out to %s Support.", f.Company),
		"",
		response,
		"",
	}
	if ticketNumber != "" {
		parts = append(parts, fmt.Sprintf("Your ticket reference: %s", ticketNumber), "")
	}
	parts = append(parts,
		"If you need further assistance, please reply to this email.",
		"",
		"Best regards,",
		fmt.Sprintf("%s Support Team", f.Company),
	)
	return truncateWords(strings.Join(parts, "\n"), emailMaxWords)
}

// formatWhatsApp caps the whole message at 300 characters; only the body is
// truncated, never the greeting or ticket suffix. Counts and cuts are in
// runes so truncation never splits a multi-byte character.
func (f Formatter) formatWhatsApp(response, customerName, ticketNumber string) string {
	greeting := fmt.Sprintf("Hi %s! ", customerName)
	footer := ""
	if ticketNumber != "" {
		footer = fmt.Sprintf("\n\nRef: %s", ticketNumber)
	}

	body := []rune(response)
	overhead := utf8.RuneCountInString(greeting) + utf8.RuneCountInString(footer)
	if overhead+len(body) <= whatsAppMaxChars {
		return greeting + response + footer
	}

	available := whatsAppMaxChars - overhead - 3
	if available < 0 {
		available = 0
	}
	if available > len(body) {
		available = len(body)
	}
	return greeting + string(body[:available]) + "..." + footer
}

func (f Formatter) formatWebForm(response, customerName, ticketNumber string) string {
	parts := []string{
		fmt.Sprintf("Hello %s,", customerName),
		"",
		response,
		"",
	}
	if ticketNumber != "" {
		parts = append(parts, fmt.Sprintf("Ticket Reference: %s", ticketNumber))
	}
	parts = append(parts,
		"",
		fmt.Sprintf("Need more help? Visit our Help Center: %s", f.HelpCenterURL),
		"",
		fmt.Sprintf("— %s Support", f.Company),
	)
	return truncateWords(strings.Join(parts, "\n"), webFormMaxWords)
}

func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
