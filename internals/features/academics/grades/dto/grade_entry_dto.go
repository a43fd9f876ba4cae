// file: internals/features/academics/grades/dto/grade_entry_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	gradeModel "academia_backend/internals/features/academics/grades/model"
)

/*
=========================================================

	REQUESTS
	=========================================================
*/
type RecordGradeRequest struct {
	GradeEntryStudentID   uuid.UUID `json:"grade_entry_student_id" validate:"required,uuid4"`
	GradeEntryGroupID     uuid.UUID `json:"grade_entry_group_id" validate:"required,uuid4"`
	GradeEntryModuleID    uuid.UUID `json:"grade_entry_module_id" validate:"required,uuid4"`
	GradeEntryGradeTypeID uuid.UUID `json:"grade_entry_grade_type_id" validate:"required,uuid4"`
	GradeEntryRawValue    float64   `json:"grade_entry_raw_value"`
}

type BulkGradeItemInput struct {
	StudentID uuid.UUID `json:"student_id" validate:"required,uuid4"`
	RawValue  float64   `json:"raw_value"`
}

type BulkRecordGradesRequest struct {
	GroupID     uuid.UUID            `json:"group_id" validate:"required,uuid4"`
	ModuleID    uuid.UUID            `json:"module_id" validate:"required,uuid4"`
	GradeTypeID uuid.UUID            `json:"grade_type_id" validate:"required,uuid4"`
	Items       []BulkGradeItemInput `json:"items" validate:"required,min=1,max=500,dive"`
}

/*
=========================================================

	RESPONSES
	=========================================================
*/
type GradeEntryResponse struct {
	GradeEntryID            uuid.UUID `json:"grade_entry_id"`
	GradeEntryStudentID     uuid.UUID `json:"grade_entry_student_id"`
	GradeEntryGroupID       uuid.UUID `json:"grade_entry_group_id"`
	GradeEntryModuleID      uuid.UUID `json:"grade_entry_module_id"`
	GradeEntryGradeTypeID   uuid.UUID `json:"grade_entry_grade_type_id"`
	GradeEntrySchemeID      uuid.UUID `json:"grade_entry_scheme_id"`
	GradeEntryRawValue      float64   `json:"grade_entry_raw_value"`
	GradeEntryWeightedValue float64   `json:"grade_entry_weighted_value"`
	GradeEntryStatus        string    `json:"grade_entry_status"`
	GradeEntryRecordedAt    time.Time `json:"grade_entry_recorded_at"`
	GradeEntryRecordedBy    uuid.UUID `json:"grade_entry_recorded_by"`
}

func NewGradeEntryResponse(m *gradeModel.GradeEntryModel) GradeEntryResponse {
	return GradeEntryResponse{
		GradeEntryID:            m.GradeEntryID,
		GradeEntryStudentID:     m.GradeEntryStudentID,
		GradeEntryGroupID:       m.GradeEntryGroupID,
		GradeEntryModuleID:      m.GradeEntryModuleID,
		GradeEntryGradeTypeID:   m.GradeEntryGradeTypeID,
		GradeEntrySchemeID:      m.GradeEntrySchemeID,
		GradeEntryRawValue:      m.GradeEntryRawValue,
		GradeEntryWeightedValue: m.GradeEntryWeightedValue,
		GradeEntryStatus:        string(m.GradeEntryStatus),
		GradeEntryRecordedAt:    m.GradeEntryRecordedAt,
		GradeEntryRecordedBy:    m.GradeEntryRecordedBy,
	}
}
