package responder

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

const systemPrompt = `You are a first-line customer support assistant answering across email, WhatsApp, and web form channels.

Rules you must never violate:
- Ground every answer in the knowledge-base excerpts supplied with the request; never invent product behavior.
- Always include the ticket reference number in your response.
- Never discuss pricing, refunds, or billing changes.
- Never share internal processes or system details.
- Be empathetic, specific, and actionable.`

var channelAddendums = map[domain.Channel]string{
	domain.ChannelEmail:    "This is an email response. Be thorough and professional; a greeting and signature are added separately, so write only the body.",
	domain.ChannelWhatsApp: "This is a WhatsApp message. Be brief, friendly, and concise; stay under 300 characters when possible.",
	domain.ChannelWebForm:  "This is a web form response. Be clear and reference relevant help articles.",
}

// buildSystemPrompt appends the channel addendum to the base instructions.
func buildSystemPrompt(channel domain.Channel) string {
	if addendum, ok := channelAddendums[channel]; ok {
		return systemPrompt + "\n\n" + addendum
	}
	return systemPrompt
}

// buildUserPrompt assembles the message, ticket, category, knowledge-base
// excerpts, and history into one grounded request.
func buildUserPrompt(input GenerationInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer name: %s\n", input.CustomerName)
	fmt.Fprintf(&b, "Ticket number: %s\n", input.TicketNumber)
	fmt.Fprintf(&b, "Detected category: %s\n\n", input.Category)
	fmt.Fprintf(&b, "Customer message:\n%s\n\n", input.Message)
	fmt.Fprintf(&b, "Knowledge base results:\n%s\n\n", input.SearchContext)
	fmt.Fprintf(&b, "Customer history:\n%s\n\n", input.HistoryContext)
	b.WriteString("Write the support response. Ground it in the knowledge base results above and include the ticket number.")
	return b.String()
}
