package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	policyController "academia_backend/internals/features/academics/attendance_policies/controller"
)

// AttendancePolicyUserRoutes
// Base: /api/u/attendance-policies (resolution and compliance reads)
func AttendancePolicyUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := policyController.NewAttendancePolicyController(db)

	g := r.Group("/attendance-policies")
	g.Get("/resolve", ctl.Resolve)
	g.Get("/compliance", ctl.StudentCompliance)
}
