package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-pipeline/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Support   *handlers.SupportHandler
	Customers *handlers.CustomersHandler
	Metrics   *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	support := app.Group("/support")
	support.Post("/submit", cfg.Support.Submit)
	support.Get("/tickets/:number", cfg.Support.TicketStatus)
	support.Patch("/tickets/:number/status", cfg.Support.UpdateTicketStatus)

	app.Get("/customers/lookup", cfg.Customers.Lookup)
	app.Get("/conversations/:id", cfg.Customers.Conversation)

	app.Get("/metrics/channels", cfg.Metrics.Channels)
}
