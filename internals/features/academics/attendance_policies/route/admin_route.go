package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	policyController "academia_backend/internals/features/academics/attendance_policies/controller"
)

// AttendancePolicyAdminRoutes
// Base: /api/a/attendance-policies
func AttendancePolicyAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := policyController.NewAttendancePolicyController(db)

	g := r.Group("/attendance-policies")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List) // ?course_id=&module_id=&page=&per_page=
	g.Get("/resolve", ctl.Resolve)
	g.Get("/compliance", ctl.StudentCompliance)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
