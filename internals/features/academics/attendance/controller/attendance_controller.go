// file: internals/features/academics/attendance/controller/attendance_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceDTO "academia_backend/internals/features/academics/attendance/dto"
	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	attendanceService "academia_backend/internals/features/academics/attendance/service"
	helper "academia_backend/internals/helpers"
	authMW "academia_backend/internals/middlewares/auth"
)

type AttendanceController struct {
	Validator *validator.Validate
	Service   *attendanceService.AttendanceRegisterService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		Validator: validator.New(),
		Service: attendanceService.NewAttendanceRegisterService(
			attendanceService.NewRepository(db),
			attendanceService.NewSessionReader(db),
		),
	}
}

// POST /attendance-records
func (ctl *AttendanceController) Record(c *fiber.Ctx) error {
	actorID, err := authMW.ActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "actor id not found in token")
	}

	var req attendanceDTO.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.RecordAttendance(c.Context(), attendanceService.RecordAttendanceInput{
		StudentID:    req.AttendanceRecordStudentID,
		SessionID:    req.AttendanceRecordSessionID,
		Status:       attendanceModel.AttendanceStatus(req.AttendanceRecordStatus),
		Observations: req.AttendanceRecordObservations,
		RecordedBy:   actorID,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "attendance recorded", attendanceDTO.NewAttendanceRecordResponse(m))
}

// POST /attendance-records/bulk
func (ctl *AttendanceController) RecordBulk(c *fiber.Ctx) error {
	actorID, err := authMW.ActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "actor id not found in token")
	}

	var req attendanceDTO.BulkRecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	items := make([]attendanceService.BulkAttendanceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, attendanceService.BulkAttendanceItem{
			StudentID:    it.StudentID,
			Status:       attendanceModel.AttendanceStatus(it.Status),
			Observations: it.Observations,
		})
	}

	res, err := ctl.Service.BulkRecord(c.Context(), req.SessionID, items, actorID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "bulk attendance processed", res)
}

// GET /attendance-records
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	f := attendanceService.ListRecordsFilter{
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
	if v := strings.TrimSpace(c.Query("session_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "session_id is not a valid uuid")
		}
		f.SessionID = &id
	}

	rows, total, err := ctl.Service.ListRecords(c.Context(), f)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]attendanceDTO.AttendanceRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, attendanceDTO.NewAttendanceRecordResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /attendance-records/:id
func (ctl *AttendanceController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record id is not a valid uuid")
	}
	m, err := ctl.Service.GetRecord(c.Context(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", attendanceDTO.NewAttendanceRecordResponse(m))
}

// PATCH /attendance-records/:id (status/observations only)
func (ctl *AttendanceController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record id is not a valid uuid")
	}

	var req attendanceDTO.PatchAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in := attendanceService.PatchRecordInput{
		Observations: req.AttendanceRecordObservations,
	}
	if req.AttendanceRecordStatus != nil {
		st := attendanceModel.AttendanceStatus(*req.AttendanceRecordStatus)
		in.Status = &st
	}

	m, err := ctl.Service.PatchRecord(c.Context(), id, in)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "attendance record updated", attendanceDTO.NewAttendanceRecordResponse(m))
}

// DELETE /attendance-records/:id
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record id is not a valid uuid")
	}
	if err := ctl.Service.DeleteRecord(c.Context(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "attendance record deleted", fiber.Map{"attendance_record_id": id})
}

// GET /attendance-records/sessions/:session_id/summary
func (ctl *AttendanceController) SessionSummary(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(strings.TrimSpace(c.Params("session_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session id is not a valid uuid")
	}
	sum, err := ctl.Service.SessionSummary(c.Context(), sessionID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", sum)
}
