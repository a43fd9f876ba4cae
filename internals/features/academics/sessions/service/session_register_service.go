// file: internals/features/academics/sessions/service/session_register_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	sessionModel "academia_backend/internals/features/academics/sessions/model"
	helper "academia_backend/internals/helpers"
)

// Generation guard: a rule expansion never spans more than a year.
const maxGenerationDays = 366

type SessionRegisterService struct {
	Repo Repository
}

func NewSessionRegisterService(repo Repository) *SessionRegisterService {
	return &SessionRegisterService{Repo: repo}
}

/*
=========================================================

	CLOCK HELPERS
	=========================================================
*/
func parseClockTime(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid time-of-day format: %q", s)
}

// DurationHours computes round2(minutes(end-start)/60); end must be after start.
func DurationHours(startTime, endTime string) (float64, error) {
	st, err := parseClockTime(startTime)
	if err != nil {
		return 0, helper.ValidationErr("start_time: %v", err)
	}
	et, err := parseClockTime(endTime)
	if err != nil {
		return 0, helper.ValidationErr("end_time: %v", err)
	}
	mins := et.Sub(st).Minutes()
	if mins <= 0 {
		return 0, helper.ValidationErr("end_time %s must be after start_time %s", endTime, startTime)
	}
	return helper.Round2(mins / 60), nil
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

/*
=========================================================

	SESSION LIFECYCLE
	=========================================================
*/
type CreateSessionInput struct {
	GroupID   uuid.UUID
	CycleID   uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
}

func (s *SessionRegisterService) CreateSession(ctx context.Context, in CreateSessionInput) (*sessionModel.ScheduledSessionModel, error) {
	return s.createOne(ctx, s.Repo, in)
}

func (s *SessionRegisterService) createOne(ctx context.Context, repo Repository, in CreateSessionInput) (*sessionModel.ScheduledSessionModel, error) {
	dur, err := DurationHours(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	m := &sessionModel.ScheduledSessionModel{
		SessionGroupID:       in.GroupID,
		SessionCycleID:       in.CycleID,
		SessionDate:          in.Date,
		SessionStartTime:     in.StartTime,
		SessionEndTime:       in.EndTime,
		SessionDurationHours: dur,
		SessionStatus:        sessionModel.SessionScheduled,
	}
	if err := repo.Create(ctx, m); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.DuplicateErr("a session already exists for this group, cycle, date and start time")
		}
		return nil, helper.InternalErr("failed to create session", err)
	}
	return m, nil
}

func (s *SessionRegisterService) GetSession(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("session %s not found", id)
	}
	return m, nil
}

func (s *SessionRegisterService) ListSessions(ctx context.Context, f ListSessionsFilter) ([]sessionModel.ScheduledSessionModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, helper.InternalErr("failed to list sessions", err)
	}
	return rows, total, nil
}

// transition moves a session out of scheduled; every target state is terminal.
func (s *SessionRegisterService) transition(ctx context.Context, repo Repository, id uuid.UUID, to sessionModel.SessionStatus) (*sessionModel.ScheduledSessionModel, error) {
	m, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("session %s not found", id)
	}
	if m.SessionStatus.IsTerminal() {
		return nil, helper.ConflictErr("session %s is already %s", id, m.SessionStatus)
	}
	m.SessionStatus = to
	if err := repo.Save(ctx, m); err != nil {
		return nil, helper.InternalErr("failed to update session", err)
	}
	return m, nil
}

func (s *SessionRegisterService) MarkHeld(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
	return s.transition(ctx, s.Repo, id, sessionModel.SessionHeld)
}

func (s *SessionRegisterService) Cancel(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
	return s.transition(ctx, s.Repo, id, sessionModel.SessionCancelled)
}

type RescheduleInput struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

// Reschedule marks the old instance rescheduled and creates its replacement
// in the same transaction, linking the two.
func (s *SessionRegisterService) Reschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*sessionModel.ScheduledSessionModel, error) {
	var replacement *sessionModel.ScheduledSessionModel

	err := s.Repo.InTx(ctx, func(repo Repository) error {
		old, err := s.transition(ctx, repo, id, sessionModel.SessionRescheduled)
		if err != nil {
			return err
		}

		replacement, err = s.createOne(ctx, repo, CreateSessionInput{
			GroupID:   old.SessionGroupID,
			CycleID:   old.SessionCycleID,
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
		if err != nil {
			return err
		}

		old.SessionRescheduledToID = &replacement.SessionID
		if err := repo.Save(ctx, old); err != nil {
			return helper.InternalErr("failed to link rescheduled session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replacement, nil
}

func (s *SessionRegisterService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return helper.InternalErr("failed to load session", err)
	}
	if m == nil {
		return helper.NotFoundErr("session %s not found", id)
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete session", err)
	}
	return nil
}

/*
=========================================================

	GENERATION RULES
	=========================================================
*/
type CreateRuleInput struct {
	GroupID    uuid.UUID
	CycleID    uuid.UUID
	DaysOfWeek []int64
	StartTime  string
	EndTime    string
	ValidFrom  time.Time
	ValidUntil time.Time
}

func (s *SessionRegisterService) CreateRule(ctx context.Context, in CreateRuleInput) (*sessionModel.SessionGenerationRuleModel, error) {
	if _, err := DurationHours(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	for _, d := range in.DaysOfWeek {
		if d < 1 || d > 7 {
			return nil, helper.ValidationErr("day of week %d is outside 1..7", d)
		}
	}
	if in.ValidUntil.Before(in.ValidFrom) {
		return nil, helper.ValidationErr("valid_until must not be before valid_from")
	}

	m := &sessionModel.SessionGenerationRuleModel{
		SessionGenerationRuleGroupID:    in.GroupID,
		SessionGenerationRuleCycleID:    in.CycleID,
		SessionGenerationRuleDaysOfWeek: in.DaysOfWeek,
		SessionGenerationRuleStartTime:  in.StartTime,
		SessionGenerationRuleEndTime:    in.EndTime,
		SessionGenerationRuleValidFrom:  in.ValidFrom,
		SessionGenerationRuleValidUntil: in.ValidUntil,
	}
	if err := s.Repo.RuleCreate(ctx, m); err != nil {
		return nil, helper.InternalErr("failed to create generation rule", err)
	}
	return m, nil
}

func (s *SessionRegisterService) ListRules(ctx context.Context, groupID *uuid.UUID) ([]sessionModel.SessionGenerationRuleModel, error) {
	rows, err := s.Repo.RuleList(ctx, groupID)
	if err != nil {
		return nil, helper.InternalErr("failed to list generation rules", err)
	}
	return rows, nil
}

func (s *SessionRegisterService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.RuleByID(ctx, id)
	if err != nil {
		return helper.InternalErr("failed to load generation rule", err)
	}
	if m == nil {
		return helper.NotFoundErr("generation rule %s not found", id)
	}
	if err := s.Repo.RuleSoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete generation rule", err)
	}
	return nil
}

type GenerateResult struct {
	CreatedCount int `json:"created_count"`
	SkippedCount int `json:"skipped_count"`
}

// GenerateSessions expands a rule over [from, to] clamped to the rule's
// validity window, creating a scheduled session on every matching weekday.
// Dates whose natural key is already taken are skipped, so reruns are
// idempotent. The whole expansion runs in one transaction.
func (s *SessionRegisterService) GenerateSessions(ctx context.Context, ruleID uuid.UUID, from, to time.Time) (*GenerateResult, error) {
	rule, err := s.Repo.RuleByID(ctx, ruleID)
	if err != nil {
		return nil, helper.InternalErr("failed to load generation rule", err)
	}
	if rule == nil {
		return nil, helper.NotFoundErr("generation rule %s not found", ruleID)
	}

	if from.Before(rule.SessionGenerationRuleValidFrom) {
		from = rule.SessionGenerationRuleValidFrom
	}
	if to.After(rule.SessionGenerationRuleValidUntil) {
		to = rule.SessionGenerationRuleValidUntil
	}
	if to.Before(from) {
		return nil, helper.ValidationErr("generation range is empty after clamping to the rule's validity window")
	}
	if int(to.Sub(from).Hours()/24)+1 > maxGenerationDays {
		return nil, helper.ValidationErr("generation range exceeds %d days", maxGenerationDays)
	}

	res := &GenerateResult{}
	err = s.Repo.InTx(ctx, func(repo Repository) error {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if !rule.MatchesWeekday(isoWeekday(d)) {
				continue
			}
			existing, err := repo.ByNaturalKey(ctx, rule.SessionGenerationRuleGroupID, rule.SessionGenerationRuleCycleID, d, rule.SessionGenerationRuleStartTime)
			if err != nil {
				return helper.InternalErr("failed to look up session", err)
			}
			if existing != nil {
				res.SkippedCount++
				continue
			}
			if _, err := s.createOne(ctx, repo, CreateSessionInput{
				GroupID:   rule.SessionGenerationRuleGroupID,
				CycleID:   rule.SessionGenerationRuleCycleID,
				Date:      d,
				StartTime: rule.SessionGenerationRuleStartTime,
				EndTime:   rule.SessionGenerationRuleEndTime,
			}); err != nil {
				return err
			}
			res.CreatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
