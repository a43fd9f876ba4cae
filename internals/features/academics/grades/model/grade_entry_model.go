// file: internals/features/academics/grades/model/grade_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeEntryStatus string

const (
	GradeEntryPending    GradeEntryStatus = "pending"
	GradeEntryRegistered GradeEntryStatus = "registered"
	GradeEntryClosed     GradeEntryStatus = "closed"
)

// GradeEntryModel holds one weighted grade per natural key
// (student, group, module, grade type). Writes go through an upsert.
type GradeEntryModel struct {
	// PK
	GradeEntryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_entry_id" json:"grade_entry_id"`

	// Natural key
	GradeEntryStudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_entries_natural;index:idx_grade_entries_student;column:grade_entry_student_id" json:"grade_entry_student_id"`
	GradeEntryGroupID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_entries_natural;column:grade_entry_group_id" json:"grade_entry_group_id"`
	GradeEntryModuleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_entries_natural;index:idx_grade_entries_module;column:grade_entry_module_id" json:"grade_entry_module_id"`
	GradeEntryGradeTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_entries_natural;column:grade_entry_grade_type_id" json:"grade_entry_grade_type_id"`

	GradeEntrySchemeID uuid.UUID `gorm:"type:uuid;not null;index:idx_grade_entries_scheme;column:grade_entry_scheme_id" json:"grade_entry_scheme_id"`

	GradeEntryRawValue      float64 `gorm:"type:numeric(5,2);not null;column:grade_entry_raw_value" json:"grade_entry_raw_value"`
	GradeEntryWeightedValue float64 `gorm:"type:numeric(6,2);not null;column:grade_entry_weighted_value" json:"grade_entry_weighted_value"`

	GradeEntryStatus GradeEntryStatus `gorm:"type:varchar(16);not null;default:'registered';column:grade_entry_status" json:"grade_entry_status"`

	GradeEntryRecordedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:grade_entry_recorded_at" json:"grade_entry_recorded_at"`
	GradeEntryRecordedBy uuid.UUID `gorm:"type:uuid;not null;column:grade_entry_recorded_by" json:"grade_entry_recorded_by"`

	GradeEntryCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:grade_entry_created_at" json:"grade_entry_created_at"`
	GradeEntryUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:grade_entry_updated_at" json:"grade_entry_updated_at"`
	GradeEntryDeletedAt gorm.DeletedAt `gorm:"column:grade_entry_deleted_at;index" json:"grade_entry_deleted_at,omitempty"`
}

func (GradeEntryModel) TableName() string { return "grade_entries" }
