package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/view"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Tickets   *handlers.TicketHandler
	Progress  *handlers.ProgressHandler
	History   *handlers.HistoryHandler
	Profile   *handlers.ProfileHandler
	Settings  *handlers.SettingsHandler
	Admin     *handlers.AdminHandler
	Health    *handlers.HealthHandler
	Guard     *session.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/healthz", cfg.Health.Health)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Get("/static/console.css", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
		return c.Send(view.ConsoleCSS())
	})

	app.Get("/", cfg.Auth.Landing)
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/signup", cfg.Auth.Signup)
	app.Post("/logout", cfg.Auth.Logout)

	user := app.Group("", cfg.Guard.RequireUser)
	user.Get("/dashboard", cfg.Dashboard.Dashboard)
	user.Get("/tickets/new", cfg.Tickets.NewTicketPage)
	user.Post("/tickets", cfg.Tickets.Create)
	user.Post("/ai/suggest", cfg.Tickets.Suggest)
	user.Get("/progress", cfg.Progress.Progress)
	user.Post("/progress/tickets/:id/status", cfg.Progress.UpdateStatus)
	user.Get("/history", cfg.History.History)
	user.Get("/history/export.csv", cfg.History.ExportCSV)
	user.Get("/profile", cfg.Profile.Profile)
	user.Get("/settings", cfg.Settings.Settings)
	user.Post("/settings/profile", cfg.Settings.SaveProfile)
	user.Post("/settings/security", cfg.Settings.SaveSecurity)
	user.Post("/settings/notifications", cfg.Settings.SaveNotifications)
	user.Post("/settings/preferences", cfg.Settings.SavePreferences)
	user.Post("/settings/clear", cfg.Settings.Clear)
	user.Get("/settings/export.json", cfg.Settings.ExportJSON)

	admin := app.Group("/admin", cfg.Guard.RequireAdmin)
	admin.Get("/", cfg.Admin.Console)
	admin.Get("/tickets/:id/edit", cfg.Admin.EditTicketPage)
	admin.Post("/tickets/:id", cfg.Admin.UpdateTicket)
	admin.Post("/tickets/:id/delete", cfg.Admin.DeleteTicket)
	admin.Post("/users/:id/delete", cfg.Admin.DeleteUser)
}
