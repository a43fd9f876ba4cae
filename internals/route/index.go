// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "academia_backend/internals/features/academics/attendance/route"
	policyRoute "academia_backend/internals/features/academics/attendance_policies/route"
	gradeRoute "academia_backend/internals/features/academics/grades/route"
	sheetRoute "academia_backend/internals/features/academics/gradesheets/route"
	schemeRoute "academia_backend/internals/features/academics/grading_schemes/route"
	sessionRoute "academia_backend/internals/features/academics/sessions/route"
	authMW "academia_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== USER (/api/u) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMW.AuthJWT(authMW.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	schemeRoute.GradingSchemeUserRoutes(user, db)
	gradeRoute.GradeEntryUserRoutes(user, db)
	sheetRoute.GradesheetUserRoutes(user, db)
	sessionRoute.SessionUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)
	policyRoute.AttendancePolicyUserRoutes(user, db)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMW.AuthJWT(authMW.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	schemeRoute.GradingSchemeAdminRoutes(admin, db)
	gradeRoute.GradeEntryAdminRoutes(admin, db)
	sheetRoute.GradesheetAdminRoutes(admin, db)
	sessionRoute.SessionAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
	policyRoute.AttendancePolicyAdminRoutes(admin, db)
}
