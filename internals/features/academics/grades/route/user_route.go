package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradeController "academia_backend/internals/features/academics/grades/controller"
)

// GradeEntryUserRoutes
// Base: /api/u/grade-entries (read only)
func GradeEntryUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := gradeController.NewGradeEntryController(db)

	g := r.Group("/grade-entries")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
}
