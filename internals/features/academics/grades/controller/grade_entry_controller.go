// file: internals/features/academics/grades/controller/grade_entry_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeDTO "academia_backend/internals/features/academics/grades/dto"
	gradeService "academia_backend/internals/features/academics/grades/service"
	helper "academia_backend/internals/helpers"
	authMW "academia_backend/internals/middlewares/auth"
)

type GradeEntryController struct {
	Validator *validator.Validate
	Service   *gradeService.GradeLedgerService
}

func NewGradeEntryController(db *gorm.DB) *GradeEntryController {
	return &GradeEntryController{
		Validator: validator.New(),
		Service:   gradeService.NewGradeLedgerService(gradeService.NewRepository(db)),
	}
}

// POST /grade-entries (idempotent on the natural key)
func (ctl *GradeEntryController) Record(c *fiber.Ctx) error {
	actorID, err := authMW.ActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "actor id not found in token")
	}

	var req gradeDTO.RecordGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.RecordGrade(c.Context(), gradeService.RecordGradeInput{
		StudentID:   req.GradeEntryStudentID,
		GroupID:     req.GradeEntryGroupID,
		ModuleID:    req.GradeEntryModuleID,
		GradeTypeID: req.GradeEntryGradeTypeID,
		RawValue:    req.GradeEntryRawValue,
		RecordedBy:  actorID,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "grade recorded", gradeDTO.NewGradeEntryResponse(m))
}

// POST /grade-entries/bulk
func (ctl *GradeEntryController) RecordBulk(c *fiber.Ctx) error {
	actorID, err := authMW.ActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "actor id not found in token")
	}

	var req gradeDTO.BulkRecordGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	items := make([]gradeService.BulkGradeItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, gradeService.BulkGradeItem{
			StudentID: it.StudentID,
			RawValue:  it.RawValue,
		})
	}

	res, err := ctl.Service.RecordBulk(c.Context(), req.GroupID, req.ModuleID, req.GradeTypeID, items, actorID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "bulk grades processed", res)
}

// GET /grade-entries
func (ctl *GradeEntryController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	f := gradeService.ListEntriesFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Offset: paging.Offset,
		Limit:  paging.Limit,
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id is not a valid uuid")
		}
		f.StudentID = &id
	}
	if v := strings.TrimSpace(c.Query("group_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id is not a valid uuid")
		}
		f.GroupID = &id
	}
	if v := strings.TrimSpace(c.Query("module_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "module_id is not a valid uuid")
		}
		f.ModuleID = &id
	}
	if v := strings.TrimSpace(c.Query("grade_type_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "grade_type_id is not a valid uuid")
		}
		f.GradeTypeID = &id
	}

	rows, total, err := ctl.Service.ListEntries(c.Context(), f)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]gradeDTO.GradeEntryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, gradeDTO.NewGradeEntryResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /grade-entries/:id
func (ctl *GradeEntryController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entry id is not a valid uuid")
	}
	m, err := ctl.Service.GetEntry(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", gradeDTO.NewGradeEntryResponse(m))
}

// DELETE /grade-entries/:id
func (ctl *GradeEntryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entry id is not a valid uuid")
	}
	if err := ctl.Service.DeleteEntry(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "grade entry deleted", fiber.Map{"grade_entry_id": id})
}
