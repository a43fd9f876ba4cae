// file: internals/features/academics/attendance/dto/attendance_record_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
)

/*
=========================================================

	REQUESTS
	=========================================================
*/
type RecordAttendanceRequest struct {
	AttendanceRecordStudentID    uuid.UUID `json:"attendance_record_student_id" validate:"required,uuid4"`
	AttendanceRecordSessionID    uuid.UUID `json:"attendance_record_session_id" validate:"required,uuid4"`
	AttendanceRecordStatus       string    `json:"attendance_record_status" validate:"required,oneof=present absent justified late"`
	AttendanceRecordObservations *string   `json:"attendance_record_observations,omitempty" validate:"omitempty,max=2000"`
}

type BulkAttendanceItemInput struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required,uuid4"`
	Status       string    `json:"status" validate:"required,oneof=present absent justified late"`
	Observations *string   `json:"observations,omitempty" validate:"omitempty,max=2000"`
}

type BulkRecordAttendanceRequest struct {
	SessionID uuid.UUID                 `json:"session_id" validate:"required,uuid4"`
	Items     []BulkAttendanceItemInput `json:"items" validate:"required,min=1,max=500,dive"`
}

type PatchAttendanceRequest struct {
	AttendanceRecordStatus       *string `json:"attendance_record_status,omitempty" validate:"omitempty,oneof=present absent justified late"`
	AttendanceRecordObservations *string `json:"attendance_record_observations,omitempty" validate:"omitempty,max=2000"`
}

/*
=========================================================

	RESPONSES
	=========================================================
*/
type AttendanceRecordResponse struct {
	AttendanceRecordID           uuid.UUID `json:"attendance_record_id"`
	AttendanceRecordStudentID    uuid.UUID `json:"attendance_record_student_id"`
	AttendanceRecordSessionID    uuid.UUID `json:"attendance_record_session_id"`
	AttendanceRecordStatus       string    `json:"attendance_record_status"`
	AttendanceRecordObservations *string   `json:"attendance_record_observations,omitempty"`
	AttendanceRecordRecordedAt   time.Time `json:"attendance_record_recorded_at"`
	AttendanceRecordRecordedBy   uuid.UUID `json:"attendance_record_recorded_by"`
}

func NewAttendanceRecordResponse(m *attendanceModel.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:           m.AttendanceRecordID,
		AttendanceRecordStudentID:    m.AttendanceRecordStudentID,
		AttendanceRecordSessionID:    m.AttendanceRecordSessionID,
		AttendanceRecordStatus:       string(m.AttendanceRecordStatus),
		AttendanceRecordObservations: m.AttendanceRecordObservations,
		AttendanceRecordRecordedAt:   m.AttendanceRecordRecordedAt,
		AttendanceRecordRecordedBy:   m.AttendanceRecordRecordedBy,
	}
}
