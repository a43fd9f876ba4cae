package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "academia_backend/internals/features/academics/attendance/controller"
	middlewares "academia_backend/internals/middlewares"
)

// AttendanceAdminRoutes
// Base: /api/a/attendance-records
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	g := r.Group("/attendance-records")
	g.Post("/", ctl.Record)
	g.Post("/bulk", middlewares.BulkWriteRateLimiter(), ctl.RecordBulk)
	g.Get("/", ctl.List) // ?student_id=&session_id=&status=
	g.Get("/sessions/:session_id/summary", ctl.SessionSummary)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
