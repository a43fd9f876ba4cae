package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "academia_backend/internals/features/academics/attendance/controller"
)

// AttendanceUserRoutes
// Base: /api/u/attendance-records (read only)
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	g := r.Group("/attendance-records")
	g.Get("/", ctl.List)
	g.Get("/sessions/:session_id/summary", ctl.SessionSummary)
	g.Get("/:id", ctl.GetByID)
}
