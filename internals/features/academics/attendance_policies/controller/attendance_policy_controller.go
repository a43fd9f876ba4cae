// file: internals/features/academics/attendance_policies/controller/attendance_policy_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	policyDTO "academia_backend/internals/features/academics/attendance_policies/dto"
	policyService "academia_backend/internals/features/academics/attendance_policies/service"
	helper "academia_backend/internals/helpers"
)

type AttendancePolicyController struct {
	Validator *validator.Validate
	Service   *policyService.ComplianceResolverService
}

func NewAttendancePolicyController(db *gorm.DB) *AttendancePolicyController {
	return &AttendancePolicyController{
		Validator: validator.New(),
		Service: policyService.NewComplianceResolverService(
			policyService.NewRepository(db),
			policyService.NewComplianceReader(db),
		),
	}
}

func parseAsOf(c *fiber.Ctx) (time.Time, error) {
	v := strings.TrimSpace(c.Query("as_of"))
	if v == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", v)
}

// POST /attendance-policies
func (ctl *AttendancePolicyController) Create(c *fiber.Ctx) error {
	var req policyDTO.CreateAttendancePolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := ctl.Service.CreatePolicy(c.Context(), m); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "attendance policy created", policyDTO.NewAttendancePolicyResponse(m))
}

// GET /attendance-policies
func (ctl *AttendancePolicyController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	f := policyService.ListPoliciesFilter{
		Offset: paging.Offset,
		Limit:  paging.Limit,
	}
	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id is not a valid uuid")
		}
		f.CourseID = &id
	}
	if v := strings.TrimSpace(c.Query("module_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "module_id is not a valid uuid")
		}
		f.ModuleID = &id
	}

	rows, total, err := ctl.Service.ListPolicies(c.Context(), f)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]policyDTO.AttendancePolicyResponse, 0, len(rows))
	for i := range rows {
		out = append(out, policyDTO.NewAttendancePolicyResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /attendance-policies/resolve?course_id=&module_id=&as_of=
func (ctl *AttendancePolicyController) Resolve(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(strings.TrimSpace(c.Query("course_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id is required and must be a uuid")
	}
	var moduleID *uuid.UUID
	if v := strings.TrimSpace(c.Query("module_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "module_id is not a valid uuid")
		}
		moduleID = &id
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "as_of must be YYYY-MM-DD")
	}

	m, err := ctl.Service.ResolvePolicy(c.Context(), courseID, moduleID, asOf)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if m == nil {
		return helper.JsonOK(c, "no attendance policy for this scope", nil)
	}
	return helper.JsonOK(c, "", policyDTO.NewAttendancePolicyResponse(m))
}

// GET /attendance-policies/compliance?student_id=&course_id=&module_id=&as_of=
func (ctl *AttendancePolicyController) StudentCompliance(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id is required and must be a uuid")
	}
	courseID, err := uuid.Parse(strings.TrimSpace(c.Query("course_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id is required and must be a uuid")
	}
	var moduleID *uuid.UUID
	if v := strings.TrimSpace(c.Query("module_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "module_id is not a valid uuid")
		}
		moduleID = &id
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "as_of must be YYYY-MM-DD")
	}

	res, err := ctl.Service.StudentCompliance(c.Context(), studentID, courseID, moduleID, asOf)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /attendance-policies/:id
func (ctl *AttendancePolicyController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "policy id is not a valid uuid")
	}
	m, err := ctl.Service.GetPolicy(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", policyDTO.NewAttendancePolicyResponse(m))
}

// PATCH /attendance-policies/:id
func (ctl *AttendancePolicyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "policy id is not a valid uuid")
	}

	var req policyDTO.UpdateAttendancePolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.GetPolicy(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	if req.AttendancePolicyName != nil {
		m.AttendancePolicyName = *req.AttendancePolicyName
	}
	if req.AttendancePolicyMinPercent != nil {
		m.AttendancePolicyMinPercent = *req.AttendancePolicyMinPercent
	}
	if req.AttendancePolicyMinHours != nil {
		m.AttendancePolicyMinHours = req.AttendancePolicyMinHours
	}
	if req.AttendancePolicyCountJustified != nil {
		m.AttendancePolicyCountJustified = *req.AttendancePolicyCountJustified
	}
	if req.AttendancePolicyFailsCourseOnBreach != nil {
		m.AttendancePolicyFailsCourseOnBreach = *req.AttendancePolicyFailsCourseOnBreach
	}
	if req.AttendancePolicyValidFrom != nil {
		m.AttendancePolicyValidFrom = req.AttendancePolicyValidFrom
	}
	if req.AttendancePolicyValidTo != nil {
		m.AttendancePolicyValidTo = req.AttendancePolicyValidTo
	}

	if err := ctl.Service.UpdatePolicy(c.Context(), m); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "attendance policy updated", policyDTO.NewAttendancePolicyResponse(m))
}

// DELETE /attendance-policies/:id
func (ctl *AttendancePolicyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "policy id is not a valid uuid")
	}
	if err := ctl.Service.DeletePolicy(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "attendance policy deleted", fiber.Map{"attendance_policy_id": id})
}
