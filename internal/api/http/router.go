package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	authGroup.Post("/refresh-token", cfg.AuthMiddleware.Handle, cfg.Users.Refresh)

	complaints := app.Group("/complaints", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	complaints.Post("", cfg.Complaints.Create)
	complaints.Get("", cfg.Complaints.List)
	// Registered before /:id so the path literal wins.
	complaints.Get("/stats/dashboard", cfg.Complaints.Stats)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Put("/:id", cfg.Complaints.Update)
	complaints.Post("/:id/assign", cfg.Complaints.Assign)
	complaints.Post("/:id/notes", cfg.Complaints.AddNote)
	complaints.Get("/:id/notes", cfg.Complaints.ListNotes)
	complaints.Post("/:id/attachments", cfg.Complaints.AddAttachment)
	complaints.Get("/:id/attachments", cfg.Complaints.ListAttachments)
	complaints.Get("/:id/history", cfg.Complaints.ListHistory)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	users.Get("", auth.RequireRole(domain.RoleManager, domain.RoleAdmin), cfg.Users.List)
	users.Get("/teams/:id/members", cfg.Users.TeamMembers)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	admin.Post("/teams", auth.RequireRole(domain.RoleAdmin), cfg.Admin.CreateTeam)
	admin.Get("/teams", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Admin.ListTeams)
	admin.Put("/teams/:id", auth.RequireRole(domain.RoleAdmin), cfg.Admin.UpdateTeam)
	admin.Post("/sla-matrix", auth.RequireRole(domain.RoleAdmin), cfg.Admin.CreateSLARule)
	admin.Get("/sla-matrix", auth.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleTeamLead), cfg.Admin.ListSLARules)
	admin.Put("/sla-matrix/:id", auth.RequireRole(domain.RoleAdmin), cfg.Admin.UpdateSLARule)
	admin.Post("/agent-action", auth.RequireRole(domain.RoleAdmin), cfg.Admin.AgentAction)
}
