package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-pipeline/internal/api/dto"
	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/service"
)

// MetricsHandler serves aggregated channel metrics.
type MetricsHandler struct {
	support *service.SupportService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(support *service.SupportService) *MetricsHandler {
	return &MetricsHandler{support: support}
}

// Channels GET /metrics/channels?channel=&hours=.
func (h *MetricsHandler) Channels(c *fiber.Ctx) error {
	var channel *domain.Channel
	if raw := c.Query("channel"); raw != "" {
		ch := domain.Channel(raw)
		channel = &ch
	}
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours = parsed
		}
	}

	results, err := h.support.ChannelMetrics(c.UserContext(), channel, hours)
	if err != nil {
		return err
	}
	items := make([]dto.ChannelMetricResponse, 0, len(results))
	for _, m := range results {
		items = append(items, dto.ChannelMetricResponse{
			Channel:    m.Channel,
			MetricType: m.MetricType,
			AvgValue:   m.AvgValue,
			Count:      m.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items, "window_hours": hours})
}
