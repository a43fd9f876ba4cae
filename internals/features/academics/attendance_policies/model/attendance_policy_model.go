// file: internals/features/academics/attendance_policies/model/attendance_policy_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendancePolicyModel configures the minimum-attendance rule for a scope.
// Both scope columns nullable: course+module is the most specific tier,
// course-only the middle one, and a fully NULL scope is the global default.
type AttendancePolicyModel struct {
	// PK
	AttendancePolicyID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_policy_id" json:"attendance_policy_id"`

	// Scope
	AttendancePolicyCourseID *uuid.UUID `gorm:"type:uuid;index:idx_attendance_policies_course;column:attendance_policy_course_id" json:"attendance_policy_course_id,omitempty"`
	AttendancePolicyModuleID *uuid.UUID `gorm:"type:uuid;column:attendance_policy_module_id" json:"attendance_policy_module_id,omitempty"`

	AttendancePolicyName string `gorm:"type:varchar(160);not null;column:attendance_policy_name" json:"attendance_policy_name"`

	AttendancePolicyMinPercent float64  `gorm:"type:numeric(5,2);not null;column:attendance_policy_min_percent" json:"attendance_policy_min_percent"`
	AttendancePolicyMinHours   *float64 `gorm:"type:numeric(6,2);column:attendance_policy_min_hours" json:"attendance_policy_min_hours,omitempty"`

	AttendancePolicyCountJustified      bool `gorm:"not null;default:true;column:attendance_policy_count_justified" json:"attendance_policy_count_justified"`
	AttendancePolicyFailsCourseOnBreach bool `gorm:"not null;default:false;column:attendance_policy_fails_course_on_breach" json:"attendance_policy_fails_course_on_breach"`

	// Validity window, both ends open-ended when NULL.
	AttendancePolicyValidFrom *time.Time `gorm:"type:date;column:attendance_policy_valid_from" json:"attendance_policy_valid_from,omitempty"`
	AttendancePolicyValidTo   *time.Time `gorm:"type:date;column:attendance_policy_valid_to" json:"attendance_policy_valid_to,omitempty"`

	AttendancePolicyCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:attendance_policy_created_at" json:"attendance_policy_created_at"`
	AttendancePolicyUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:attendance_policy_updated_at" json:"attendance_policy_updated_at"`
	AttendancePolicyDeletedAt gorm.DeletedAt `gorm:"column:attendance_policy_deleted_at;index" json:"attendance_policy_deleted_at,omitempty"`
}

func (AttendancePolicyModel) TableName() string { return "attendance_policies" }

// Specificity rank used by the resolver: course+module beats course, which
// beats the global default.
func (m *AttendancePolicyModel) Specificity() int {
	switch {
	case m.AttendancePolicyCourseID != nil && m.AttendancePolicyModuleID != nil:
		return 2
	case m.AttendancePolicyCourseID != nil:
		return 1
	default:
		return 0
	}
}
