// file: internals/features/academics/sessions/controller/session_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionDTO "academia_backend/internals/features/academics/sessions/dto"
	sessionService "academia_backend/internals/features/academics/sessions/service"
	helper "academia_backend/internals/helpers"
)

type SessionController struct {
	Validator *validator.Validate
	Service   *sessionService.SessionRegisterService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		Validator: validator.New(),
		Service:   sessionService.NewSessionRegisterService(sessionService.NewRepository(db)),
	}
}

// POST /sessions
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	var req sessionDTO.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.CreateSession(c.Context(), sessionService.CreateSessionInput{
		GroupID:   req.SessionGroupID,
		CycleID:   req.SessionCycleID,
		Date:      req.SessionDate,
		StartTime: req.SessionStartTime,
		EndTime:   req.SessionEndTime,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	c.Set("Location", "/sessions/"+m.SessionID.String())
	return helper.JsonCreated(c, "session created", sessionDTO.NewSessionResponse(m))
}

// GET /sessions
func (ctl *SessionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	f := sessionService.ListSessionsFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Offset: paging.Offset,
		Limit:  paging.Limit,
	}
	if v := strings.TrimSpace(c.Query("group_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id is not a valid uuid")
		}
		f.GroupID = &id
	}
	if v := strings.TrimSpace(c.Query("cycle_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "cycle_id is not a valid uuid")
		}
		f.CycleID = &id
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		f.DateFrom = &d
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		f.DateTo = &d
	}

	rows, total, err := ctl.Service.ListSessions(c.Context(), f)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]sessionDTO.SessionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, sessionDTO.NewSessionResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /sessions/:id
func (ctl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}
	m, err := ctl.Service.GetSession(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", sessionDTO.NewSessionResponse(m))
}

// POST /sessions/:id/held
func (ctl *SessionController) MarkHeld(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}
	m, err := ctl.Service.MarkHeld(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "session marked held", sessionDTO.NewSessionResponse(m))
}

// POST /sessions/:id/cancel
func (ctl *SessionController) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}
	m, err := ctl.Service.Cancel(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "session cancelled", sessionDTO.NewSessionResponse(m))
}

// POST /sessions/:id/reschedule
func (ctl *SessionController) Reschedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}

	var req sessionDTO.RescheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	replacement, err := ctl.Service.Reschedule(c.Context(), id, sessionService.RescheduleInput{
		Date:      req.SessionDate,
		StartTime: req.SessionStartTime,
		EndTime:   req.SessionEndTime,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "session rescheduled", sessionDTO.NewSessionResponse(replacement))
}

// DELETE /sessions/:id
func (ctl *SessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}
	if err := ctl.Service.DeleteSession(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "session deleted", fiber.Map{"session_id": id})
}

/*
=========================================================

	GENERATION RULES
	=========================================================
*/

// POST /session-generation-rules
func (ctl *SessionController) CreateRule(c *fiber.Ctx) error {
	var req sessionDTO.CreateGenerationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.CreateRule(c.Context(), sessionService.CreateRuleInput{
		GroupID:    req.SessionGenerationRuleGroupID,
		CycleID:    req.SessionGenerationRuleCycleID,
		DaysOfWeek: req.SessionGenerationRuleDaysOfWeek,
		StartTime:  req.SessionGenerationRuleStartTime,
		EndTime:    req.SessionGenerationRuleEndTime,
		ValidFrom:  req.SessionGenerationRuleValidFrom,
		ValidUntil: req.SessionGenerationRuleValidUntil,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "generation rule created", sessionDTO.NewGenerationRuleResponse(m))
}

// GET /session-generation-rules?group_id=
func (ctl *SessionController) ListRules(c *fiber.Ctx) error {
	var groupID *uuid.UUID
	if v := strings.TrimSpace(c.Query("group_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id is not a valid uuid")
		}
		groupID = &id
	}

	rows, err := ctl.Service.ListRules(c.Context(), groupID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]sessionDTO.GenerationRuleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, sessionDTO.NewGenerationRuleResponse(&rows[i]))
	}
	return helper.JsonOK(c, "", out)
}

// POST /session-generation-rules/:id/generate
func (ctl *SessionController) Generate(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "rule id is not a valid uuid")
	}

	var req sessionDTO.GenerateSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Service.GenerateSessions(c.Context(), id, req.From, req.To)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "sessions generated", res)
}

// DELETE /session-generation-rules/:id
func (ctl *SessionController) DeleteRule(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "rule id is not a valid uuid")
	}
	if err := ctl.Service.DeleteRule(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "generation rule deleted", fiber.Map{"session_generation_rule_id": id})
}
