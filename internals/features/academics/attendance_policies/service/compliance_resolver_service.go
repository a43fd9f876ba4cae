// file: internals/features/academics/attendance_policies/service/compliance_resolver_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	policyModel "academia_backend/internals/features/academics/attendance_policies/model"
	sessionModel "academia_backend/internals/features/academics/sessions/model"
	helper "academia_backend/internals/helpers"
)

type ComplianceResolverService struct {
	Repo   Repository
	Reader ComplianceReader
}

func NewComplianceResolverService(repo Repository, reader ComplianceReader) *ComplianceResolverService {
	return &ComplianceResolverService{Repo: repo, Reader: reader}
}

/*
=========================================================

	POLICY CRUD
	=========================================================
*/
func (s *ComplianceResolverService) CreatePolicy(ctx context.Context, m *policyModel.AttendancePolicyModel) error {
	if m.AttendancePolicyMinPercent < 0 || m.AttendancePolicyMinPercent > 100 {
		return helper.ValidationErr("min percent %.2f is outside 0..100", m.AttendancePolicyMinPercent)
	}
	if m.AttendancePolicyModuleID != nil && m.AttendancePolicyCourseID == nil {
		return helper.ValidationErr("a module-scoped policy requires a course")
	}
	if m.AttendancePolicyValidFrom != nil && m.AttendancePolicyValidTo != nil &&
		m.AttendancePolicyValidTo.Before(*m.AttendancePolicyValidFrom) {
		return helper.ValidationErr("valid_to must not be before valid_from")
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return helper.InternalErr("failed to create attendance policy", err)
	}
	return nil
}

func (s *ComplianceResolverService) GetPolicy(ctx context.Context, id uuid.UUID) (*policyModel.AttendancePolicyModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load attendance policy", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("attendance policy %s not found", id)
	}
	return m, nil
}

func (s *ComplianceResolverService) ListPolicies(ctx context.Context, f ListPoliciesFilter) ([]policyModel.AttendancePolicyModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, helper.InternalErr("failed to list attendance policies", err)
	}
	return rows, total, nil
}

func (s *ComplianceResolverService) UpdatePolicy(ctx context.Context, m *policyModel.AttendancePolicyModel) error {
	if m.AttendancePolicyMinPercent < 0 || m.AttendancePolicyMinPercent > 100 {
		return helper.ValidationErr("min percent %.2f is outside 0..100", m.AttendancePolicyMinPercent)
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return helper.InternalErr("failed to update attendance policy", err)
	}
	return nil
}

func (s *ComplianceResolverService) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPolicy(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete attendance policy", err)
	}
	return nil
}

/*
=========================================================

	RESOLUTION
	=========================================================
*/

// ResolvePolicy picks the most specific policy valid at asOf: course+module
// beats course-only beats global. Among equals the newest wins. Returns nil
// when nothing matches; presence is the caller's concern.
func (s *ComplianceResolverService) ResolvePolicy(ctx context.Context, courseID uuid.UUID, moduleID *uuid.UUID, asOf time.Time) (*policyModel.AttendancePolicyModel, error) {
	candidates, err := s.Repo.Candidates(ctx, courseID, moduleID, asOf)
	if err != nil {
		return nil, helper.InternalErr("failed to load policy candidates", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Candidates arrive newest first, so > keeps the newest among ties.
	best := &candidates[0]
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Specificity() > best.Specificity() {
			best = &candidates[i]
		}
	}
	return best, nil
}

/*
=========================================================

	COMPLIANCE
	=========================================================
*/
type ComplianceResult struct {
	StudentID          uuid.UUID  `json:"student_id"`
	CourseID           uuid.UUID  `json:"course_id"`
	ModuleID           *uuid.UUID `json:"module_id,omitempty"`
	AttendancePolicyID uuid.UUID  `json:"attendance_policy_id"`
	HoursTotal         float64    `json:"hours_total"`
	HoursAttended      float64    `json:"hours_attended"`
	Percentage         float64    `json:"percentage"`
	Compliant          bool       `json:"compliant"`
	FailsCourse        bool       `json:"fails_course"`
}

// StudentCompliance measures attended hours against the resolved policy.
// hoursTotal covers every non-cancelled session in scope up to asOf;
// hoursAttended covers sessions whose record counts toward the minimum,
// with justified absences excluded when the policy says so.
func (s *ComplianceResolverService) StudentCompliance(ctx context.Context, studentID, courseID uuid.UUID, moduleID *uuid.UUID, asOf time.Time) (*ComplianceResult, error) {
	policy, err := s.ResolvePolicy(ctx, courseID, moduleID, asOf)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, helper.NotFoundErr("no attendance policy configured for course %s", courseID)
	}

	sessions, err := s.Reader.ScopeSessions(ctx, studentID, courseID, asOf)
	if err != nil {
		return nil, helper.InternalErr("failed to load sessions in scope", err)
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	for i := range sessions {
		if sessions[i].SessionStatus != sessionModel.SessionCancelled {
			ids = append(ids, sessions[i].SessionID)
		}
	}
	statuses, err := s.Reader.StudentStatuses(ctx, studentID, ids)
	if err != nil {
		return nil, helper.InternalErr("failed to load attendance records", err)
	}

	res := &ComplianceResult{
		StudentID:          studentID,
		CourseID:           courseID,
		ModuleID:           moduleID,
		AttendancePolicyID: policy.AttendancePolicyID,
	}
	var total, attended float64
	for i := range sessions {
		sess := &sessions[i]
		if sess.SessionStatus == sessionModel.SessionCancelled {
			continue
		}
		total += sess.SessionDurationHours

		st, ok := statuses[sess.SessionID]
		if !ok {
			continue
		}
		if !st.CountsTowardMinimum() {
			continue
		}
		if st.IsJustified() && !policy.AttendancePolicyCountJustified {
			continue
		}
		attended += sess.SessionDurationHours
	}

	res.HoursTotal = helper.Round2(total)
	res.HoursAttended = helper.Round2(attended)
	if total > 0 {
		res.Percentage = helper.Round2(100 * attended / total)
	}
	res.Compliant = res.Percentage >= policy.AttendancePolicyMinPercent
	if policy.AttendancePolicyMinHours != nil && attended < *policy.AttendancePolicyMinHours {
		res.Compliant = false
	}
	res.FailsCourse = !res.Compliant && policy.AttendancePolicyFailsCourseOnBreach
	return res, nil
}
