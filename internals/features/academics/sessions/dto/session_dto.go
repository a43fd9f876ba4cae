// file: internals/features/academics/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	sessionModel "academia_backend/internals/features/academics/sessions/model"
)

/*
=========================================================

	REQUESTS
	=========================================================
*/
type CreateSessionRequest struct {
	SessionGroupID   uuid.UUID `json:"session_group_id" validate:"required,uuid4"`
	SessionCycleID   uuid.UUID `json:"session_cycle_id" validate:"required,uuid4"`
	SessionDate      time.Time `json:"session_date" validate:"required"`
	SessionStartTime string    `json:"session_start_time" validate:"required"`
	SessionEndTime   string    `json:"session_end_time" validate:"required"`
}

type RescheduleSessionRequest struct {
	SessionDate      time.Time `json:"session_date" validate:"required"`
	SessionStartTime string    `json:"session_start_time" validate:"required"`
	SessionEndTime   string    `json:"session_end_time" validate:"required"`
}

type CreateGenerationRuleRequest struct {
	SessionGenerationRuleGroupID    uuid.UUID `json:"session_generation_rule_group_id" validate:"required,uuid4"`
	SessionGenerationRuleCycleID    uuid.UUID `json:"session_generation_rule_cycle_id" validate:"required,uuid4"`
	SessionGenerationRuleDaysOfWeek []int64   `json:"session_generation_rule_days_of_week" validate:"required,min=1,dive,gte=1,lte=7"`
	SessionGenerationRuleStartTime  string    `json:"session_generation_rule_start_time" validate:"required"`
	SessionGenerationRuleEndTime    string    `json:"session_generation_rule_end_time" validate:"required"`
	SessionGenerationRuleValidFrom  time.Time `json:"session_generation_rule_valid_from" validate:"required"`
	SessionGenerationRuleValidUntil time.Time `json:"session_generation_rule_valid_until" validate:"required"`
}

type GenerateSessionsRequest struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

/*
=========================================================

	RESPONSES
	=========================================================
*/
type SessionResponse struct {
	SessionID              uuid.UUID  `json:"session_id"`
	SessionGroupID         uuid.UUID  `json:"session_group_id"`
	SessionCycleID         uuid.UUID  `json:"session_cycle_id"`
	SessionDate            time.Time  `json:"session_date"`
	SessionStartTime       string     `json:"session_start_time"`
	SessionEndTime         string     `json:"session_end_time"`
	SessionDurationHours   float64    `json:"session_duration_hours"`
	SessionStatus          string     `json:"session_status"`
	SessionRescheduledToID *uuid.UUID `json:"session_rescheduled_to_id,omitempty"`
}

func NewSessionResponse(m *sessionModel.ScheduledSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:              m.SessionID,
		SessionGroupID:         m.SessionGroupID,
		SessionCycleID:         m.SessionCycleID,
		SessionDate:            m.SessionDate,
		SessionStartTime:       m.SessionStartTime,
		SessionEndTime:         m.SessionEndTime,
		SessionDurationHours:   m.SessionDurationHours,
		SessionStatus:          string(m.SessionStatus),
		SessionRescheduledToID: m.SessionRescheduledToID,
	}
}

type GenerationRuleResponse struct {
	SessionGenerationRuleID         uuid.UUID `json:"session_generation_rule_id"`
	SessionGenerationRuleGroupID    uuid.UUID `json:"session_generation_rule_group_id"`
	SessionGenerationRuleCycleID    uuid.UUID `json:"session_generation_rule_cycle_id"`
	SessionGenerationRuleDaysOfWeek []int64   `json:"session_generation_rule_days_of_week"`
	SessionGenerationRuleStartTime  string    `json:"session_generation_rule_start_time"`
	SessionGenerationRuleEndTime    string    `json:"session_generation_rule_end_time"`
	SessionGenerationRuleValidFrom  time.Time `json:"session_generation_rule_valid_from"`
	SessionGenerationRuleValidUntil time.Time `json:"session_generation_rule_valid_until"`
}

func NewGenerationRuleResponse(m *sessionModel.SessionGenerationRuleModel) GenerationRuleResponse {
	return GenerationRuleResponse{
		SessionGenerationRuleID:         m.SessionGenerationRuleID,
		SessionGenerationRuleGroupID:    m.SessionGenerationRuleGroupID,
		SessionGenerationRuleCycleID:    m.SessionGenerationRuleCycleID,
		SessionGenerationRuleDaysOfWeek: m.SessionGenerationRuleDaysOfWeek,
		SessionGenerationRuleStartTime:  m.SessionGenerationRuleStartTime,
		SessionGenerationRuleEndTime:    m.SessionGenerationRuleEndTime,
		SessionGenerationRuleValidFrom:  m.SessionGenerationRuleValidFrom,
		SessionGenerationRuleValidUntil: m.SessionGenerationRuleValidUntil,
	}
}
