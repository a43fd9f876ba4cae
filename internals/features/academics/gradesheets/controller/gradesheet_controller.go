// file: internals/features/academics/gradesheets/controller/gradesheet_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sheetService "academia_backend/internals/features/academics/gradesheets/service"
	helper "academia_backend/internals/helpers"
)

type GradesheetController struct {
	Service *sheetService.GradeAggregatorService
}

func NewGradesheetController(db *gorm.DB) *GradesheetController {
	return &GradesheetController{
		Service: sheetService.NewGradeAggregatorService(
			sheetService.NewSchemeResolver(db),
			sheetService.NewEntryReader(db),
			sheetService.NewEnrollmentReader(db),
		),
	}
}

// GET /gradesheets/final?student_id=&module_id=&group_id=
func (ctl *GradesheetController) FinalGrade(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id is required and must be a uuid")
	}
	moduleID, err := uuid.Parse(strings.TrimSpace(c.Query("module_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "module_id is required and must be a uuid")
	}
	var groupID *uuid.UUID
	if v := strings.TrimSpace(c.Query("group_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id is not a valid uuid")
		}
		groupID = &id
	}

	res, err := ctl.Service.FinalGrade(c.Context(), studentID, moduleID, groupID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /gradesheets/students/:student_id?cycle_id=
func (ctl *GradesheetController) StudentGradesheet(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id is not a valid uuid")
	}
	cycleID, err := uuid.Parse(strings.TrimSpace(c.Query("cycle_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cycle_id is required and must be a uuid")
	}

	sheet, err := ctl.Service.StudentGradesheet(c.Context(), studentID, cycleID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", sheet)
}

// GET /gradesheets/groups/:group_id?module_id=
func (ctl *GradesheetController) GroupGradesheet(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(strings.TrimSpace(c.Params("group_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "group id is not a valid uuid")
	}
	moduleID, err := uuid.Parse(strings.TrimSpace(c.Query("module_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "module_id is required and must be a uuid")
	}

	sheet, err := ctl.Service.GroupGradesheet(c.Context(), groupID, moduleID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", sheet)
}
