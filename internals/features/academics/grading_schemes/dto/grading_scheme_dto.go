// file: internals/features/academics/grading_schemes/dto/grading_scheme_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
)

/*
=========================================================

	CREATE
	=========================================================
*/
type GradeTypeInput struct {
	GradeTypeID            *uuid.UUID `json:"grade_type_id,omitempty" validate:"omitempty,uuid4"`
	GradeTypeName          string     `json:"grade_type_name" validate:"required,min=1,max=120"`
	GradeTypeWeightPercent float64    `json:"grade_type_weight_percent" validate:"gte=0,lte=100"`
	GradeTypeOrder         int        `json:"grade_type_order" validate:"gte=0"`
	GradeTypeMinValue      float64    `json:"grade_type_min_value"`
	GradeTypeMaxValue      float64    `json:"grade_type_max_value" validate:"gtfield=GradeTypeMinValue"`
}

type CreateGradingSchemeRequest struct {
	GradingSchemeModuleID uuid.UUID        `json:"grading_scheme_module_id" validate:"required,uuid4"`
	GradingSchemeGroupID  *uuid.UUID       `json:"grading_scheme_group_id,omitempty" validate:"omitempty,uuid4"`
	GradingSchemeName     string           `json:"grading_scheme_name" validate:"required,min=2,max=160"`
	GradingSchemeStatus   *string          `json:"grading_scheme_status,omitempty" validate:"omitempty,oneof=active inactive"`
	GradingSchemeMeta     datatypes.JSON   `json:"grading_scheme_meta,omitempty"`
	GradeTypes            []GradeTypeInput `json:"grade_types" validate:"required,min=1,dive"`
}

func (r CreateGradingSchemeRequest) ToModel(ownerID uuid.UUID) *schemeModel.GradingSchemeModel {
	status := schemeModel.GradingSchemeActive
	if r.GradingSchemeStatus != nil {
		status = schemeModel.GradingSchemeStatus(*r.GradingSchemeStatus)
	}
	meta := r.GradingSchemeMeta
	if len(meta) == 0 {
		meta = datatypes.JSON([]byte("{}"))
	}
	m := &schemeModel.GradingSchemeModel{
		GradingSchemeModuleID: r.GradingSchemeModuleID,
		GradingSchemeGroupID:  r.GradingSchemeGroupID,
		GradingSchemeOwnerID:  ownerID,
		GradingSchemeName:     r.GradingSchemeName,
		GradingSchemeStatus:   status,
		GradingSchemeMeta:     meta,
	}
	for _, t := range r.GradeTypes {
		m.GradingSchemeGradeTypes = append(m.GradingSchemeGradeTypes, schemeModel.GradeTypeModel{
			GradeTypeName:          t.GradeTypeName,
			GradeTypeWeightPercent: t.GradeTypeWeightPercent,
			GradeTypeOrder:         t.GradeTypeOrder,
			GradeTypeMinValue:      t.GradeTypeMinValue,
			GradeTypeMaxValue:      t.GradeTypeMaxValue,
		})
	}
	return m
}

/*
=========================================================

	UPDATE (grade_types, when present, replaces the full list)
	=========================================================
*/
type UpdateGradingSchemeRequest struct {
	GradingSchemeName   *string          `json:"grading_scheme_name,omitempty" validate:"omitempty,min=2,max=160"`
	GradingSchemeStatus *string          `json:"grading_scheme_status,omitempty" validate:"omitempty,oneof=active inactive"`
	GradingSchemeMeta   datatypes.JSON   `json:"grading_scheme_meta,omitempty"`
	GradeTypes          []GradeTypeInput `json:"grade_types,omitempty" validate:"omitempty,min=1,dive"`
}

/*
=========================================================

	RESPONSES
	=========================================================
*/
type GradeTypeResponse struct {
	GradeTypeID            uuid.UUID `json:"grade_type_id"`
	GradeTypeName          string    `json:"grade_type_name"`
	GradeTypeWeightPercent float64   `json:"grade_type_weight_percent"`
	GradeTypeOrder         int       `json:"grade_type_order"`
	GradeTypeMinValue      float64   `json:"grade_type_min_value"`
	GradeTypeMaxValue      float64   `json:"grade_type_max_value"`
}

type GradingSchemeResponse struct {
	GradingSchemeID        uuid.UUID           `json:"grading_scheme_id"`
	GradingSchemeModuleID  uuid.UUID           `json:"grading_scheme_module_id"`
	GradingSchemeGroupID   *uuid.UUID          `json:"grading_scheme_group_id,omitempty"`
	GradingSchemeOwnerID   uuid.UUID           `json:"grading_scheme_owner_id"`
	GradingSchemeName      string              `json:"grading_scheme_name"`
	GradingSchemeStatus    string              `json:"grading_scheme_status"`
	GradingSchemeMeta      datatypes.JSON      `json:"grading_scheme_meta,omitempty"`
	GradingSchemeCreatedAt time.Time           `json:"grading_scheme_created_at"`
	GradeTypes             []GradeTypeResponse `json:"grade_types"`
}

func NewGradingSchemeResponse(m *schemeModel.GradingSchemeModel) GradingSchemeResponse {
	resp := GradingSchemeResponse{
		GradingSchemeID:        m.GradingSchemeID,
		GradingSchemeModuleID:  m.GradingSchemeModuleID,
		GradingSchemeGroupID:   m.GradingSchemeGroupID,
		GradingSchemeOwnerID:   m.GradingSchemeOwnerID,
		GradingSchemeName:      m.GradingSchemeName,
		GradingSchemeStatus:    string(m.GradingSchemeStatus),
		GradingSchemeMeta:      m.GradingSchemeMeta,
		GradingSchemeCreatedAt: m.GradingSchemeCreatedAt,
		GradeTypes:             make([]GradeTypeResponse, 0, len(m.GradingSchemeGradeTypes)),
	}
	for _, t := range m.GradingSchemeGradeTypes {
		resp.GradeTypes = append(resp.GradeTypes, GradeTypeResponse{
			GradeTypeID:            t.GradeTypeID,
			GradeTypeName:          t.GradeTypeName,
			GradeTypeWeightPercent: t.GradeTypeWeightPercent,
			GradeTypeOrder:         t.GradeTypeOrder,
			GradeTypeMinValue:      t.GradeTypeMinValue,
			GradeTypeMaxValue:      t.GradeTypeMaxValue,
		})
	}
	return resp
}

type WeightValidationResponse struct {
	GradingSchemeID uuid.UUID `json:"grading_scheme_id"`
	WeightSum       float64   `json:"weight_sum"`
	Valid           bool      `json:"valid"`
}
