// file: internals/features/academics/sessions/model/scheduled_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionHeld        SessionStatus = "held"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// Scheduled is the only non-terminal state.
func (s SessionStatus) IsTerminal() bool { return s != SessionScheduled }

// Attendance may only be written while the session is scheduled or held.
func (s SessionStatus) AllowsAttendance() bool {
	return s == SessionScheduled || s == SessionHeld
}

// ScheduledSessionModel is one class meeting of a group within a cycle.
// Times are clock strings ("HH:MM" or "HH:MM:SS"); the duration is derived
// at write time and never recomputed on read.
type ScheduledSessionModel struct {
	// PK
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	// Natural key
	SessionGroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_natural;index:idx_sessions_group;column:session_group_id" json:"session_group_id"`
	SessionCycleID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_natural;column:session_cycle_id" json:"session_cycle_id"`
	SessionDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_sessions_natural;index:idx_sessions_date;column:session_date" json:"session_date"`
	SessionStartTime string    `gorm:"type:time;not null;uniqueIndex:uq_sessions_natural;column:session_start_time" json:"session_start_time"`

	SessionEndTime       string  `gorm:"type:time;not null;column:session_end_time" json:"session_end_time"`
	SessionDurationHours float64 `gorm:"type:numeric(5,2);not null;column:session_duration_hours" json:"session_duration_hours"`

	SessionStatus SessionStatus `gorm:"type:varchar(16);not null;default:'scheduled';column:session_status" json:"session_status"`

	// Set when the session is rescheduled, points at its replacement.
	SessionRescheduledToID *uuid.UUID `gorm:"type:uuid;column:session_rescheduled_to_id" json:"session_rescheduled_to_id,omitempty"`

	SessionCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:session_created_at" json:"session_created_at"`
	SessionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:session_updated_at" json:"session_updated_at"`
	SessionDeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index" json:"session_deleted_at,omitempty"`
}

func (ScheduledSessionModel) TableName() string { return "scheduled_sessions" }
