// file: internals/features/academics/attendance_policies/service/compliance_resolver_service_test.go
package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	policyModel "academia_backend/internals/features/academics/attendance_policies/model"
	sessionModel "academia_backend/internals/features/academics/sessions/model"
	helper "academia_backend/internals/helpers"
)

type fakePolicyRepo struct {
	policies map[uuid.UUID]*policyModel.AttendancePolicyModel
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: map[uuid.UUID]*policyModel.AttendancePolicyModel{}}
}

func (f *fakePolicyRepo) add(m *policyModel.AttendancePolicyModel) *policyModel.AttendancePolicyModel {
	if m.AttendancePolicyID == uuid.Nil {
		m.AttendancePolicyID = uuid.New()
	}
	f.policies[m.AttendancePolicyID] = m
	return m
}

func (f *fakePolicyRepo) ByID(_ context.Context, id uuid.UUID) (*policyModel.AttendancePolicyModel, error) {
	return f.policies[id], nil
}

func (f *fakePolicyRepo) List(_ context.Context, _ ListPoliciesFilter) ([]policyModel.AttendancePolicyModel, int64, error) {
	var out []policyModel.AttendancePolicyModel
	for _, m := range f.policies {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakePolicyRepo) Candidates(_ context.Context, courseID uuid.UUID, moduleID *uuid.UUID, asOf time.Time) ([]policyModel.AttendancePolicyModel, error) {
	var out []policyModel.AttendancePolicyModel
	for _, m := range f.policies {
		if m.AttendancePolicyCourseID != nil && *m.AttendancePolicyCourseID != courseID {
			continue
		}
		if m.AttendancePolicyModuleID != nil {
			if moduleID == nil || *m.AttendancePolicyModuleID != *moduleID {
				continue
			}
		}
		if m.AttendancePolicyValidFrom != nil && m.AttendancePolicyValidFrom.After(asOf) {
			continue
		}
		if m.AttendancePolicyValidTo != nil && m.AttendancePolicyValidTo.Before(asOf) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AttendancePolicyCreatedAt.After(out[j].AttendancePolicyCreatedAt)
	})
	return out, nil
}

func (f *fakePolicyRepo) Create(_ context.Context, m *policyModel.AttendancePolicyModel) error {
	f.add(m)
	return nil
}

func (f *fakePolicyRepo) Save(_ context.Context, m *policyModel.AttendancePolicyModel) error {
	f.policies[m.AttendancePolicyID] = m
	return nil
}

func (f *fakePolicyRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(f.policies, id)
	return nil
}

type fakeComplianceReader struct {
	sessions []sessionModel.ScheduledSessionModel
	statuses map[uuid.UUID]attendanceModel.AttendanceStatus
}

func (f *fakeComplianceReader) ScopeSessions(_ context.Context, _, _ uuid.UUID, _ time.Time) ([]sessionModel.ScheduledSessionModel, error) {
	return f.sessions, nil
}

func (f *fakeComplianceReader) StudentStatuses(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]attendanceModel.AttendanceStatus, error) {
	out := map[uuid.UUID]attendanceModel.AttendanceStatus{}
	for _, id := range ids {
		if st, ok := f.statuses[id]; ok {
			out[id] = st
		}
	}
	return out, nil
}

func (f *fakeComplianceReader) addSession(hours float64, status sessionModel.SessionStatus) uuid.UUID {
	id := uuid.New()
	f.sessions = append(f.sessions, sessionModel.ScheduledSessionModel{
		SessionID:            id,
		SessionDurationHours: hours,
		SessionStatus:        status,
	})
	return id
}

func policy(courseID, moduleID *uuid.UUID, minPercent float64, createdAt time.Time) *policyModel.AttendancePolicyModel {
	return &policyModel.AttendancePolicyModel{
		AttendancePolicyID:             uuid.New(),
		AttendancePolicyCourseID:       courseID,
		AttendancePolicyModuleID:       moduleID,
		AttendancePolicyName:           "policy",
		AttendancePolicyMinPercent:     minPercent,
		AttendancePolicyCountJustified: true,
		AttendancePolicyCreatedAt:      createdAt,
	}
}

func TestCreatePolicyValidation(t *testing.T) {
	svc := NewComplianceResolverService(newFakePolicyRepo(), &fakeComplianceReader{})
	moduleID := uuid.New()

	m := policy(nil, &moduleID, 80, time.Now())
	if err := svc.CreatePolicy(context.Background(), m); helper.KindOf(err) != helper.ErrKindValidation {
		t.Fatalf("module without course error kind = %v, want validation", helper.KindOf(err))
	}

	m = policy(nil, nil, 120, time.Now())
	if err := svc.CreatePolicy(context.Background(), m); helper.KindOf(err) != helper.ErrKindValidation {
		t.Fatalf("min percent 120 error kind = %v, want validation", helper.KindOf(err))
	}

	m = policy(nil, nil, 80, time.Now())
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.AttendancePolicyValidFrom = &from
	m.AttendancePolicyValidTo = &to
	if err := svc.CreatePolicy(context.Background(), m); helper.KindOf(err) != helper.ErrKindValidation {
		t.Fatalf("inverted window error kind = %v, want validation", helper.KindOf(err))
	}
}

func TestResolvePolicySpecificity(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewComplianceResolverService(repo, &fakeComplianceReader{})
	courseID := uuid.New()
	moduleID := uuid.New()

	global := repo.add(policy(nil, nil, 70, time.Now().Add(-time.Hour)))
	courseOnly := repo.add(policy(&courseID, nil, 75, time.Now().Add(-2*time.Hour)))
	courseModule := repo.add(policy(&courseID, &moduleID, 85, time.Now().Add(-3*time.Hour)))

	got, err := svc.ResolvePolicy(context.Background(), courseID, &moduleID, time.Now())
	if err != nil {
		t.Fatalf("ResolvePolicy: %v", err)
	}
	if got.AttendancePolicyID != courseModule.AttendancePolicyID {
		t.Fatal("course+module policy should win over less specific ones")
	}

	// Without a module the course-level policy wins, despite the newer global.
	got, err = svc.ResolvePolicy(context.Background(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("ResolvePolicy: %v", err)
	}
	if got.AttendancePolicyID != courseOnly.AttendancePolicyID {
		t.Fatal("course policy should win over the global default")
	}

	got, err = svc.ResolvePolicy(context.Background(), uuid.New(), nil, time.Now())
	if err != nil {
		t.Fatalf("ResolvePolicy: %v", err)
	}
	if got.AttendancePolicyID != global.AttendancePolicyID {
		t.Fatal("other courses should fall back to the global default")
	}
}

func TestResolvePolicyNewestWinsTies(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewComplianceResolverService(repo, &fakeComplianceReader{})
	courseID := uuid.New()

	repo.add(policy(&courseID, nil, 70, time.Now().Add(-48*time.Hour)))
	newer := repo.add(policy(&courseID, nil, 80, time.Now()))

	got, err := svc.ResolvePolicy(context.Background(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("ResolvePolicy: %v", err)
	}
	if got.AttendancePolicyID != newer.AttendancePolicyID {
		t.Fatal("among equally specific policies the newest should win")
	}
}

func TestResolvePolicyValidityWindow(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewComplianceResolverService(repo, &fakeComplianceReader{})
	courseID := uuid.New()

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	expired := policy(&courseID, nil, 80, time.Now())
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expired.AttendancePolicyValidTo = &to
	repo.add(expired)

	future := policy(&courseID, nil, 90, time.Now())
	future.AttendancePolicyValidFrom = &from
	repo.add(future)

	got, err := svc.ResolvePolicy(context.Background(), courseID, nil, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ResolvePolicy: %v", err)
	}
	if got != nil {
		t.Fatalf("resolved %+v, want nil outside every validity window", got)
	}
}

func TestStudentComplianceNoPolicy(t *testing.T) {
	svc := NewComplianceResolverService(newFakePolicyRepo(), &fakeComplianceReader{})

	_, err := svc.StudentCompliance(context.Background(), uuid.New(), uuid.New(), nil, time.Now())
	if helper.KindOf(err) != helper.ErrKindNotFound {
		t.Fatalf("error kind = %v, want not_found", helper.KindOf(err))
	}
}

func TestStudentCompliance(t *testing.T) {
	repo := newFakePolicyRepo()
	reader := &fakeComplianceReader{statuses: map[uuid.UUID]attendanceModel.AttendanceStatus{}}
	svc := NewComplianceResolverService(repo, reader)
	courseID := uuid.New()

	repo.add(policy(&courseID, nil, 75, time.Now()))

	// Four countable 2h sessions plus a cancelled one that must not count.
	attended := reader.addSession(2, sessionModel.SessionHeld)
	late := reader.addSession(2, sessionModel.SessionHeld)
	absent := reader.addSession(2, sessionModel.SessionHeld)
	justified := reader.addSession(2, sessionModel.SessionHeld)
	cancelled := reader.addSession(2, sessionModel.SessionCancelled)

	reader.statuses[attended] = attendanceModel.AttendancePresent
	reader.statuses[late] = attendanceModel.AttendanceLate
	reader.statuses[absent] = attendanceModel.AttendanceAbsent
	reader.statuses[justified] = attendanceModel.AttendanceJustified
	reader.statuses[cancelled] = attendanceModel.AttendancePresent

	res, err := svc.StudentCompliance(context.Background(), uuid.New(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("StudentCompliance: %v", err)
	}
	if res.HoursTotal != 8 {
		t.Fatalf("hours total = %v, want 8 (cancelled session excluded)", res.HoursTotal)
	}
	if res.HoursAttended != 6 {
		t.Fatalf("hours attended = %v, want 6 (present, late and justified)", res.HoursAttended)
	}
	if res.Percentage != 75 {
		t.Fatalf("percentage = %v, want 75", res.Percentage)
	}
	if !res.Compliant {
		t.Fatal("75%% against a 75%% minimum should be compliant")
	}
	if res.FailsCourse {
		t.Fatal("compliant result must not flag course failure")
	}
}

func TestStudentComplianceJustifiedExcluded(t *testing.T) {
	repo := newFakePolicyRepo()
	reader := &fakeComplianceReader{statuses: map[uuid.UUID]attendanceModel.AttendanceStatus{}}
	svc := NewComplianceResolverService(repo, reader)
	courseID := uuid.New()

	strict := policy(&courseID, nil, 75, time.Now())
	strict.AttendancePolicyCountJustified = false
	strict.AttendancePolicyFailsCourseOnBreach = true
	repo.add(strict)

	present := reader.addSession(2, sessionModel.SessionHeld)
	justified := reader.addSession(2, sessionModel.SessionHeld)
	reader.statuses[present] = attendanceModel.AttendancePresent
	reader.statuses[justified] = attendanceModel.AttendanceJustified

	res, err := svc.StudentCompliance(context.Background(), uuid.New(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("StudentCompliance: %v", err)
	}
	if res.HoursAttended != 2 {
		t.Fatalf("hours attended = %v, want 2 (justified excluded)", res.HoursAttended)
	}
	if res.Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", res.Percentage)
	}
	if res.Compliant {
		t.Fatal("50%% against a 75%% minimum should not be compliant")
	}
	if !res.FailsCourse {
		t.Fatal("breach of a fails-course policy should flag course failure")
	}
}

func TestStudentComplianceNoSessions(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewComplianceResolverService(repo, &fakeComplianceReader{})
	courseID := uuid.New()

	repo.add(policy(&courseID, nil, 0, time.Now()))

	res, err := svc.StudentCompliance(context.Background(), uuid.New(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("StudentCompliance: %v", err)
	}
	if res.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 with no sessions in scope", res.Percentage)
	}
	if !res.Compliant {
		t.Fatal("a zero minimum with no sessions should be compliant")
	}
}

func TestStudentComplianceMinHours(t *testing.T) {
	repo := newFakePolicyRepo()
	reader := &fakeComplianceReader{statuses: map[uuid.UUID]attendanceModel.AttendanceStatus{}}
	svc := NewComplianceResolverService(repo, reader)
	courseID := uuid.New()

	minHours := 10.0
	p := policy(&courseID, nil, 50, time.Now())
	p.AttendancePolicyMinHours = &minHours
	repo.add(p)

	present := reader.addSession(4, sessionModel.SessionHeld)
	reader.statuses[present] = attendanceModel.AttendancePresent

	res, err := svc.StudentCompliance(context.Background(), uuid.New(), courseID, nil, time.Now())
	if err != nil {
		t.Fatalf("StudentCompliance: %v", err)
	}
	if res.Percentage != 100 {
		t.Fatalf("percentage = %v, want 100", res.Percentage)
	}
	if res.Compliant {
		t.Fatal("4 attended hours against a 10 hour floor should not be compliant")
	}
}
