package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "academia_backend/internals/features/academics/sessions/controller"
	middlewares "academia_backend/internals/middlewares"
)

// SessionAdminRoutes
// Base: /api/a/sessions and /api/a/session-generation-rules
func SessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sessionController.NewSessionController(db)

	g := r.Group("/sessions")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List) // ?group_id=&cycle_id=&status=&date_from=&date_to=
	g.Get("/:id", ctl.GetByID)
	g.Post("/:id/held", ctl.MarkHeld)
	g.Post("/:id/cancel", ctl.Cancel)
	g.Post("/:id/reschedule", ctl.Reschedule)
	g.Delete("/:id", ctl.Delete)

	rules := r.Group("/session-generation-rules")
	rules.Post("/", ctl.CreateRule)
	rules.Get("/", ctl.ListRules)
	rules.Post("/:id/generate", middlewares.BulkWriteRateLimiter(), ctl.Generate)
	rules.Delete("/:id", ctl.DeleteRule)
}
