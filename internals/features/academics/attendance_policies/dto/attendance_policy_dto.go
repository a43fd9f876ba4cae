// file: internals/features/academics/attendance_policies/dto/attendance_policy_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	policyModel "academia_backend/internals/features/academics/attendance_policies/model"
)

/*
=========================================================

	REQUESTS
	=========================================================
*/
type CreateAttendancePolicyRequest struct {
	AttendancePolicyCourseID *uuid.UUID `json:"attendance_policy_course_id,omitempty" validate:"omitempty,uuid4"`
	AttendancePolicyModuleID *uuid.UUID `json:"attendance_policy_module_id,omitempty" validate:"omitempty,uuid4"`

	AttendancePolicyName string `json:"attendance_policy_name" validate:"required,min=2,max=160"`

	AttendancePolicyMinPercent float64  `json:"attendance_policy_min_percent" validate:"gte=0,lte=100"`
	AttendancePolicyMinHours   *float64 `json:"attendance_policy_min_hours,omitempty" validate:"omitempty,gte=0"`

	AttendancePolicyCountJustified      *bool `json:"attendance_policy_count_justified,omitempty"`
	AttendancePolicyFailsCourseOnBreach bool  `json:"attendance_policy_fails_course_on_breach"`

	AttendancePolicyValidFrom *time.Time `json:"attendance_policy_valid_from,omitempty"`
	AttendancePolicyValidTo   *time.Time `json:"attendance_policy_valid_to,omitempty"`
}

func (r CreateAttendancePolicyRequest) ToModel() *policyModel.AttendancePolicyModel {
	countJustified := true
	if r.AttendancePolicyCountJustified != nil {
		countJustified = *r.AttendancePolicyCountJustified
	}
	return &policyModel.AttendancePolicyModel{
		AttendancePolicyCourseID:            r.AttendancePolicyCourseID,
		AttendancePolicyModuleID:            r.AttendancePolicyModuleID,
		AttendancePolicyName:                r.AttendancePolicyName,
		AttendancePolicyMinPercent:          r.AttendancePolicyMinPercent,
		AttendancePolicyMinHours:            r.AttendancePolicyMinHours,
		AttendancePolicyCountJustified:      countJustified,
		AttendancePolicyFailsCourseOnBreach: r.AttendancePolicyFailsCourseOnBreach,
		AttendancePolicyValidFrom:           r.AttendancePolicyValidFrom,
		AttendancePolicyValidTo:             r.AttendancePolicyValidTo,
	}
}

type UpdateAttendancePolicyRequest struct {
	AttendancePolicyName *string `json:"attendance_policy_name,omitempty" validate:"omitempty,min=2,max=160"`

	AttendancePolicyMinPercent *float64 `json:"attendance_policy_min_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	AttendancePolicyMinHours   *float64 `json:"attendance_policy_min_hours,omitempty" validate:"omitempty,gte=0"`

	AttendancePolicyCountJustified      *bool `json:"attendance_policy_count_justified,omitempty"`
	AttendancePolicyFailsCourseOnBreach *bool `json:"attendance_policy_fails_course_on_breach,omitempty"`

	AttendancePolicyValidFrom *time.Time `json:"attendance_policy_valid_from,omitempty"`
	AttendancePolicyValidTo   *time.Time `json:"attendance_policy_valid_to,omitempty"`
}

/*
=========================================================

	RESPONSES
	=========================================================
*/
type AttendancePolicyResponse struct {
	AttendancePolicyID uuid.UUID `json:"attendance_policy_id"`

	AttendancePolicyCourseID *uuid.UUID `json:"attendance_policy_course_id,omitempty"`
	AttendancePolicyModuleID *uuid.UUID `json:"attendance_policy_module_id,omitempty"`

	AttendancePolicyName string `json:"attendance_policy_name"`

	AttendancePolicyMinPercent float64  `json:"attendance_policy_min_percent"`
	AttendancePolicyMinHours   *float64 `json:"attendance_policy_min_hours,omitempty"`

	AttendancePolicyCountJustified      bool `json:"attendance_policy_count_justified"`
	AttendancePolicyFailsCourseOnBreach bool `json:"attendance_policy_fails_course_on_breach"`

	AttendancePolicyValidFrom *time.Time `json:"attendance_policy_valid_from,omitempty"`
	AttendancePolicyValidTo   *time.Time `json:"attendance_policy_valid_to,omitempty"`

	AttendancePolicyCreatedAt time.Time `json:"attendance_policy_created_at"`
}

func NewAttendancePolicyResponse(m *policyModel.AttendancePolicyModel) AttendancePolicyResponse {
	return AttendancePolicyResponse{
		AttendancePolicyID:                  m.AttendancePolicyID,
		AttendancePolicyCourseID:            m.AttendancePolicyCourseID,
		AttendancePolicyModuleID:            m.AttendancePolicyModuleID,
		AttendancePolicyName:                m.AttendancePolicyName,
		AttendancePolicyMinPercent:          m.AttendancePolicyMinPercent,
		AttendancePolicyMinHours:            m.AttendancePolicyMinHours,
		AttendancePolicyCountJustified:      m.AttendancePolicyCountJustified,
		AttendancePolicyFailsCourseOnBreach: m.AttendancePolicyFailsCourseOnBreach,
		AttendancePolicyValidFrom:           m.AttendancePolicyValidFrom,
		AttendancePolicyValidTo:             m.AttendancePolicyValidTo,
		AttendancePolicyCreatedAt:           m.AttendancePolicyCreatedAt,
	}
}
