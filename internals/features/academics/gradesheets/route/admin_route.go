package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sheetController "academia_backend/internals/features/academics/gradesheets/controller"
)

// GradesheetAdminRoutes
// Base: /api/a/gradesheets (reads only, aggregation has no writes)
func GradesheetAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sheetController.NewGradesheetController(db)

	g := r.Group("/gradesheets")
	g.Get("/final", ctl.FinalGrade)
	g.Get("/students/:student_id", ctl.StudentGradesheet)
	g.Get("/groups/:group_id", ctl.GroupGradesheet)
}
