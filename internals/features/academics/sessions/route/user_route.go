package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "academia_backend/internals/features/academics/sessions/controller"
)

// SessionUserRoutes
// Base: /api/u/sessions (read only)
func SessionUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sessionController.NewSessionController(db)

	g := r.Group("/sessions")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
}
