// file: internals/features/academics/grading_schemes/controller/grading_scheme_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schemeDTO "academia_backend/internals/features/academics/grading_schemes/dto"
	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	schemeService "academia_backend/internals/features/academics/grading_schemes/service"
	helper "academia_backend/internals/helpers"
	authMW "academia_backend/internals/middlewares/auth"
)

type GradingSchemeController struct {
	Validator *validator.Validate
	Service   *schemeService.SchemeRegistryService
}

func NewGradingSchemeController(db *gorm.DB) *GradingSchemeController {
	return &GradingSchemeController{
		Validator: validator.New(),
		Service:   schemeService.NewSchemeRegistryService(schemeService.NewRepository(db)),
	}
}

// POST /grading-schemes
func (ctl *GradingSchemeController) Create(c *fiber.Ctx) error {
	actorID, err := authMW.ActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "actor id not found in token")
	}

	var req schemeDTO.CreateGradingSchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(actorID)
	if err := ctl.Service.CreateScheme(c.Context(), m); err != nil {
		return helper.JsonDomainError(c, err)
	}

	c.Set("Location", "/grading-schemes/"+m.GradingSchemeID.String())
	return helper.JsonCreated(c, "grading scheme created", schemeDTO.NewGradingSchemeResponse(m))
}

// GET /grading-schemes
func (ctl *GradingSchemeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	f := schemeService.ListSchemesFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Offset: paging.Offset,
		Limit:  paging.Limit,
	}
	if v := strings.TrimSpace(c.Query("module_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "module_id is not a valid uuid")
		}
		f.ModuleID = &id
	}
	if v := strings.TrimSpace(c.Query("group_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id is not a valid uuid")
		}
		f.GroupID = &id
	}

	rows, total, err := ctl.Service.ListSchemes(c.Context(), f)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]schemeDTO.GradingSchemeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, schemeDTO.NewGradingSchemeResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /grading-schemes/resolve?module_id=&group_id=
func (ctl *GradingSchemeController) Resolve(c *fiber.Ctx) error {
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

	m, err := ctl.Service.ResolveActive(c.Context(), moduleID, groupID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if m == nil {
		return helper.JsonOK(c, "no active grading scheme for this scope", nil)
	}
	return helper.JsonOK(c, "", schemeDTO.NewGradingSchemeResponse(m))
}

// GET /grading-schemes/:id
func (ctl *GradingSchemeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheme id is not a valid uuid")
	}
	m, err := ctl.Service.GetScheme(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", schemeDTO.NewGradingSchemeResponse(m))
}

// GET /grading-schemes/:id/validate-weights
func (ctl *GradingSchemeController) ValidateWeights(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheme id is not a valid uuid")
	}
	m, err := ctl.Service.GetScheme(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", schemeDTO.WeightValidationResponse{
		GradingSchemeID: m.GradingSchemeID,
		WeightSum:       helper.Round2(m.WeightSum()),
		Valid:           ctl.Service.ValidateWeights(m),
	})
}

// PATCH /grading-schemes/:id
func (ctl *GradingSchemeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheme id is not a valid uuid")
	}

	var req schemeDTO.UpdateGradingSchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.GetScheme(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	if req.GradingSchemeName != nil {
		m.GradingSchemeName = *req.GradingSchemeName
	}
	if req.GradingSchemeStatus != nil {
		m.GradingSchemeStatus = schemeModel.GradingSchemeStatus(*req.GradingSchemeStatus)
	}
	if len(req.GradingSchemeMeta) > 0 {
		m.GradingSchemeMeta = req.GradingSchemeMeta
	}

	replaceTypes := len(req.GradeTypes) > 0
	if replaceTypes {
		m.GradingSchemeGradeTypes = m.GradingSchemeGradeTypes[:0]
		for _, t := range req.GradeTypes {
			m.GradingSchemeGradeTypes = append(m.GradingSchemeGradeTypes, schemeModel.GradeTypeModel{
				GradeTypeSchemeID:      m.GradingSchemeID,
				GradeTypeName:          t.GradeTypeName,
				GradeTypeWeightPercent: t.GradeTypeWeightPercent,
				GradeTypeOrder:         t.GradeTypeOrder,
				GradeTypeMinValue:      t.GradeTypeMinValue,
				GradeTypeMaxValue:      t.GradeTypeMaxValue,
			})
		}
	}

	if err := ctl.Service.UpdateScheme(c.Context(), m, replaceTypes); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "grading scheme updated", schemeDTO.NewGradingSchemeResponse(m))
}

// DELETE /grading-schemes/:id (soft delete, blocked while entries exist)
func (ctl *GradingSchemeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheme id is not a valid uuid")
	}
	if err := ctl.Service.DeleteScheme(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "grading scheme deleted", fiber.Map{"grading_scheme_id": id})
}
