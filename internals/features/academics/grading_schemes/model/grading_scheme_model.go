// file: internals/features/academics/grading_schemes/model/grading_scheme_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GradingSchemeStatus string

const (
	GradingSchemeActive   GradingSchemeStatus = "active"
	GradingSchemeInactive GradingSchemeStatus = "inactive"
)

type GradingSchemeModel struct {
	// PK
	GradingSchemeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grading_scheme_id" json:"grading_scheme_id"`

	// Scope: group NULL means the scheme applies to every group of the module.
	GradingSchemeModuleID uuid.UUID  `gorm:"type:uuid;not null;index:idx_grading_schemes_module;column:grading_scheme_module_id" json:"grading_scheme_module_id"`
	GradingSchemeGroupID  *uuid.UUID `gorm:"type:uuid;index:idx_grading_schemes_group;column:grading_scheme_group_id" json:"grading_scheme_group_id,omitempty"`

	GradingSchemeOwnerID uuid.UUID `gorm:"type:uuid;not null;column:grading_scheme_owner_id" json:"grading_scheme_owner_id"`

	GradingSchemeName   string              `gorm:"type:varchar(160);not null;column:grading_scheme_name" json:"grading_scheme_name"`
	GradingSchemeStatus GradingSchemeStatus `gorm:"type:varchar(16);not null;default:'active';column:grading_scheme_status" json:"grading_scheme_status"`

	// Free-form descriptors (display labels, legacy ids).
	GradingSchemeMeta datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:grading_scheme_meta" json:"grading_scheme_meta"`

	GradingSchemeCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:grading_scheme_created_at" json:"grading_scheme_created_at"`
	GradingSchemeUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:grading_scheme_updated_at" json:"grading_scheme_updated_at"`
	GradingSchemeDeletedAt gorm.DeletedAt `gorm:"column:grading_scheme_deleted_at;index" json:"grading_scheme_deleted_at,omitempty"`

	GradingSchemeGradeTypes []GradeTypeModel `gorm:"foreignKey:GradeTypeSchemeID;references:GradingSchemeID" json:"grade_types,omitempty"`
}

func (GradingSchemeModel) TableName() string { return "grading_schemes" }

// WeightSum adds up the weight of every grade type on the scheme.
func (m *GradingSchemeModel) WeightSum() float64 {
	sum := 0.0
	for _, gt := range m.GradingSchemeGradeTypes {
		sum += gt.GradeTypeWeightPercent
	}
	return sum
}
