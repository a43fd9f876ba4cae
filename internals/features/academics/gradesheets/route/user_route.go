package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sheetController "academia_backend/internals/features/academics/gradesheets/controller"
)

// GradesheetUserRoutes
// Base: /api/u/gradesheets
func GradesheetUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sheetController.NewGradesheetController(db)

	g := r.Group("/gradesheets")
	g.Get("/final", ctl.FinalGrade)
	g.Get("/students/:student_id", ctl.StudentGradesheet)
}
