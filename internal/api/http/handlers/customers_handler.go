package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-pipeline/internal/api/dto"
	"github.com/spec-kit/support-pipeline/internal/service"
)

// CustomersHandler serves customer and conversation read endpoints.
type CustomersHandler struct {
	support *service.SupportService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(support *service.SupportService) *CustomersHandler {
	return &CustomersHandler{support: support}
}

// Lookup GET /customers/lookup?email=&phone=.
func (h *CustomersHandler) Lookup(c *fiber.Ctx) error {
	customer, err := h.support.LookupCustomer(c.UserContext(), c.Query("email"), c.Query("phone"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Company:   customer.Company,
		CreatedAt: customer.CreatedAt,
	}})
}

// Conversation GET /conversations/:id.
func (h *CustomersHandler) Conversation(c *fiber.Ctx) error {
	conv, msgs, err := h.support.ConversationView(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.MessageResponse{
			ID:         msgs[i].ID,
			SenderType: msgs[i].SenderType,
			Content:    msgs[i].Content,
			Channel:    msgs[i].Channel,
			Metadata:   msgs[i].Metadata,
			CreatedAt:  msgs[i].CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": dto.ConversationResponse{
		ID:         conv.ID,
		CustomerID: conv.CustomerID,
		Channel:    conv.Channel,
		Status:     conv.Status,
		Subject:    conv.Subject,
		StartedAt:  conv.StartedAt,
		Messages:   items,
	}})
}
