// file: internals/features/academics/grading_schemes/model/grade_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeTypeModel struct {
	// PK
	GradeTypeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_type_id" json:"grade_type_id"`

	GradeTypeSchemeID uuid.UUID `gorm:"type:uuid;not null;index:idx_grade_types_scheme;column:grade_type_scheme_id" json:"grade_type_scheme_id"`

	GradeTypeName          string  `gorm:"type:varchar(120);not null;column:grade_type_name" json:"grade_type_name"`
	GradeTypeWeightPercent float64 `gorm:"type:numeric(5,2);not null;column:grade_type_weight_percent" json:"grade_type_weight_percent"` // DB: CHECK 0..100
	GradeTypeOrder         int     `gorm:"not null;default:0;column:grade_type_order" json:"grade_type_order"`
	GradeTypeMinValue      float64 `gorm:"type:numeric(5,2);not null;default:0;column:grade_type_min_value" json:"grade_type_min_value"`
	GradeTypeMaxValue      float64 `gorm:"type:numeric(5,2);not null;column:grade_type_max_value" json:"grade_type_max_value"`

	GradeTypeCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:grade_type_created_at" json:"grade_type_created_at"`
	GradeTypeUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:grade_type_updated_at" json:"grade_type_updated_at"`
	GradeTypeDeletedAt gorm.DeletedAt `gorm:"column:grade_type_deleted_at;index" json:"grade_type_deleted_at,omitempty"`
}

func (GradeTypeModel) TableName() string { return "grade_types" }
