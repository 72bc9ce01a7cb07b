package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/stacktrack/stacktrack/internal/api/http/handlers"
	"github.com/stacktrack/stacktrack/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Session *handlers.SessionHandler
	Tickets *handlers.TicketsHandler
	Clients *handlers.ClientsHandler
	Options *handlers.OptionsHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/healthz/live", cfg.Health.Live)
	app.Get("/healthz/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api")

	sessionGroup := api.Group("/session")
	sessionGroup.Get("/me", cfg.Session.Me)
	sessionGroup.Post("/logout", cfg.Session.Logout)

	tickets := api.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/assign", cfg.Tickets.AssignTicket)
	tickets.Get("/:id/notes", cfg.Tickets.ListNotes)
	tickets.Post("/:id/notes", cfg.Tickets.AddNote)

	clients := api.Group("/clients")
	clients.Get("/", cfg.Clients.ListClients)
	clients.Post("/", cfg.Clients.CreateClient)
	clients.Get("/:id", cfg.Clients.GetClient)
	clients.Put("/:id", cfg.Clients.UpdateClient)
	clients.Delete("/:id", cfg.Clients.DeleteClient)

	api.Get("/options", cfg.Options.GetCatalog)
}
