package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-pipeline/internal/api/dto"
	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/service"
	apperrors "github.com/spec-kit/support-pipeline/pkg/util"
)

// SupportHandler serves the public intake and ticket status endpoints.
type SupportHandler struct {
	intake  *service.IntakeService
	support *service.SupportService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(intake *service.IntakeService, support *service.SupportService) *SupportHandler {
	return &SupportHandler{intake: intake, support: support}
}

// Submit POST /support/submit.
func (h *SupportHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	receipt, err := h.intake.Submit(c.UserContext(), service.WebFormSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SubmitResponse{
		TicketNumber:      receipt.TicketNumber,
		ConversationID:    receipt.ConversationID,
		Status:            receipt.Status,
		EstimatedResponse: receipt.EstimatedResponse,
		SubmittedAt:       receipt.SubmittedAt,
	}})
}

// TicketStatus GET /support/tickets/:number.
func (h *SupportHandler) TicketStatus(c *fiber.Ctx) error {
	ticket, err := h.support.TicketByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketStatusResponse(ticket)})
}

// UpdateTicketStatus PATCH /support/tickets/:number/status.
func (h *SupportHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.support.UpdateTicketStatus(c.UserContext(), c.Params("number"), req.Status, req.Resolution)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketStatusResponse(ticket)})
}

func ticketStatusResponse(ticket *domain.Ticket) dto.TicketStatusResponse {
	return dto.TicketStatusResponse{
		TicketNumber: ticket.TicketNumber,
		Channel:      ticket.Channel,
		Subject:      ticket.Subject,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		Resolution:   ticket.Resolution,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		ResolvedAt:   ticket.ResolvedAt,
	}
}
