package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schemeController "academia_backend/internals/features/academics/grading_schemes/controller"
)

// GradingSchemeAdminRoutes
// Base: /api/a/grading-schemes
func GradingSchemeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := schemeController.NewGradingSchemeController(db)

	g := r.Group("/grading-schemes")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List) // ?module_id=&group_id=&status=&page=&per_page=
	g.Get("/resolve", ctl.Resolve)
	g.Get("/:id", ctl.GetByID)
	g.Get("/:id/validate-weights", ctl.ValidateWeights)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
