package responder

import (
	"fmt"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

const noResultsResponse = "I've searched our documentation but couldn't find a specific answer to your question. " +
	"I've created a ticket for our team to look into this further. " +
	"A team member will follow up with you shortly."

const escalationAck = "I understand your concern and I want to make sure you get the best help possible. " +
	"I've escalated your request to our specialized team. " +
	"A human agent will be in touch with you shortly."

const defaultCategoryResponse = "Thank you for reaching out. I've reviewed our documentation and " +
	"created a ticket for your request. Our team will look into this " +
	"and get back to you with a detailed answer."

var categoryResponses = map[domain.TicketCategory]string{
	domain.CategoryPasswordReset: "To reset your password, please follow these steps:\n" +
		"1. Go to the login page\n" +
		"2. Click 'Forgot Password'\n" +
		"3. Enter your registered email address\n" +
		"4. Check your email for the reset link (check spam folder too)\n" +
		"5. Click the link and set a new password\n\n" +
		"If you're still having trouble, our team can help reset it manually.",
	domain.CategoryBilling: "I can see you have a billing-related question. For your security, " +
		"billing changes need to be handled by our accounts team. " +
		"I've flagged your request and someone will assist you shortly.",
	domain.CategoryBugReport: "Thank you for reporting this issue. I've logged it for our engineering team. " +
		"In the meantime, you might try:\n" +
		"1. Clearing your browser cache and cookies\n" +
		"2. Trying a different browser\n" +
		"3. Disabling browser extensions\n\n" +
		"Our team will investigate and follow up with you.",
	domain.CategoryIntegration: "I found some information about integrations in our docs. " +
		"For integration setup and troubleshooting, please visit our " +
		"Integration Guide in the Help Center. If you need specific help, " +
		"our team will follow up with detailed instructions.",
	domain.CategoryAPIHelp: "For API-related questions, I recommend checking our API documentation. " +
		"Common topics include authentication, rate limits, and webhook configuration. " +
		"If you need further assistance, our developer support team can help.",
	domain.CategoryFeedback: "Thank you for your feedback! We really appreciate hearing from our users. " +
		"I've logged your suggestion for our product team to review. " +
		"Your input helps us make the product better for everyone.",
}

// categoryResponse returns the canned reply for a category.
func categoryResponse(category domain.TicketCategory) string {
	if response, ok := categoryResponses[category]; ok {
		return response
	}
	return defaultCategoryResponse
}

// fallbackResponse still names the ticket number and customer when the
// generation backend is unavailable.
func fallbackResponse(customerName, ticketNumber string) string {
	return fmt.Sprintf("Hi %s, thank you for contacting support. "+
		"I've created ticket %s for your request and our team is looking into it. "+
		"We'll get back to you with a detailed answer shortly.", customerName, ticketNumber)
}
