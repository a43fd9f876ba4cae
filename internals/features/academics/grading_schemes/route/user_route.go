package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schemeController "academia_backend/internals/features/academics/grading_schemes/controller"
)

// GradingSchemeUserRoutes
// Base: /api/u/grading-schemes (read only)
func GradingSchemeUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := schemeController.NewGradingSchemeController(db)

	g := r.Group("/grading-schemes")
	g.Get("/", ctl.List)
	g.Get("/resolve", ctl.Resolve)
	g.Get("/:id", ctl.GetByID)
}
