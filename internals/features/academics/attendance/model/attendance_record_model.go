// file: internals/features/academics/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceJustified AttendanceStatus = "justified"
	AttendanceLate      AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceJustified, AttendanceLate:
		return true
	}
	return false
}

// Counted as physically present: present and late.
func (s AttendanceStatus) IsCountedPresent() bool {
	return s == AttendancePresent || s == AttendanceLate
}

func (s AttendanceStatus) IsJustified() bool { return s == AttendanceJustified }

// Default minimum-attendance predicate; a policy with countJustified=false
// narrows it back down to counted-present only.
func (s AttendanceStatus) CountsTowardMinimum() bool {
	return s.IsCountedPresent() || s.IsJustified()
}

// AttendanceRecordModel is one attendance fact per (student, session).
// Creation is one-shot; later mutation is limited to status/observations.
type AttendanceRecordModel struct {
	// PK
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	// Natural key
	AttendanceRecordStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_natural;index:idx_attendance_records_student;column:attendance_record_student_id" json:"attendance_record_student_id"`
	AttendanceRecordSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_natural;index:idx_attendance_records_session;column:attendance_record_session_id" json:"attendance_record_session_id"`

	AttendanceRecordStatus       AttendanceStatus `gorm:"type:varchar(16);not null;column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordObservations *string          `gorm:"type:text;column:attendance_record_observations" json:"attendance_record_observations,omitempty"`

	AttendanceRecordRecordedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_record_recorded_at" json:"attendance_record_recorded_at"`
	AttendanceRecordRecordedBy uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_recorded_by" json:"attendance_record_recorded_by"`

	AttendanceRecordCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:attendance_record_created_at" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:attendance_record_updated_at" json:"attendance_record_updated_at"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index" json:"attendance_record_deleted_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
