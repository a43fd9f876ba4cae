// file: internals/features/academics/sessions/model/session_generation_rule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SessionGenerationRuleModel is a weekly recurrence pattern the generator
// expands into scheduled sessions. Days of week are ISO (1=Monday..7=Sunday).
type SessionGenerationRuleModel struct {
	SessionGenerationRuleID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_generation_rule_id" json:"session_generation_rule_id"`

	SessionGenerationRuleGroupID uuid.UUID `gorm:"type:uuid;not null;index:idx_session_generation_rules_group;column:session_generation_rule_group_id" json:"session_generation_rule_group_id"`
	SessionGenerationRuleCycleID uuid.UUID `gorm:"type:uuid;not null;column:session_generation_rule_cycle_id" json:"session_generation_rule_cycle_id"`

	SessionGenerationRuleDaysOfWeek pq.Int64Array `gorm:"type:int[];not null;column:session_generation_rule_days_of_week" json:"session_generation_rule_days_of_week"`

	SessionGenerationRuleStartTime string `gorm:"type:time;not null;column:session_generation_rule_start_time" json:"session_generation_rule_start_time"`
	SessionGenerationRuleEndTime   string `gorm:"type:time;not null;column:session_generation_rule_end_time" json:"session_generation_rule_end_time"`

	SessionGenerationRuleValidFrom  time.Time `gorm:"type:date;not null;column:session_generation_rule_valid_from" json:"session_generation_rule_valid_from"`
	SessionGenerationRuleValidUntil time.Time `gorm:"type:date;not null;column:session_generation_rule_valid_until" json:"session_generation_rule_valid_until"`

	SessionGenerationRuleCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:session_generation_rule_created_at" json:"session_generation_rule_created_at"`
	SessionGenerationRuleUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:session_generation_rule_updated_at" json:"session_generation_rule_updated_at"`
	SessionGenerationRuleDeletedAt gorm.DeletedAt `gorm:"column:session_generation_rule_deleted_at;index" json:"session_generation_rule_deleted_at,omitempty"`
}

func (SessionGenerationRuleModel) TableName() string { return "session_generation_rules" }

// MatchesWeekday reports whether the ISO weekday (1..7) is in the pattern.
func (m *SessionGenerationRuleModel) MatchesWeekday(isoDay int) bool {
	for _, d := range m.SessionGenerationRuleDaysOfWeek {
		if int(d) == isoDay {
			return true
		}
	}
	return false
}
