package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientdesk/ticket-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assign", cfg.Tickets.AssignTicket)
}
