package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradeController "academia_backend/internals/features/academics/grades/controller"
	middlewares "academia_backend/internals/middlewares"
)

// GradeEntryAdminRoutes
// Base: /api/a/grade-entries
func GradeEntryAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := gradeController.NewGradeEntryController(db)

	g := r.Group("/grade-entries")
	g.Post("/", ctl.Record)
	g.Post("/bulk", middlewares.BulkWriteRateLimiter(), ctl.RecordBulk)
	g.Get("/", ctl.List) // ?student_id=&group_id=&module_id=&grade_type_id=&status=
	g.Get("/:id", ctl.GetByID)
	g.Delete("/:id", ctl.Delete)
}
