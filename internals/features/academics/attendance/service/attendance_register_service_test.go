// file: internals/features/academics/attendance/service/attendance_register_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	sessionModel "academia_backend/internals/features/academics/sessions/model"
	helper "academia_backend/internals/helpers"
)

type recordKey struct {
	student, session uuid.UUID
}

type fakeAttendanceRepo struct {
	records map[recordKey]*attendanceModel.AttendanceRecordModel
	saves   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[recordKey]*attendanceModel.AttendanceRecordModel{}}
}

func (f *fakeAttendanceRepo) ByID(_ context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	for _, m := range f.records {
		if m.AttendanceRecordID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ByStudentSession(_ context.Context, studentID, sessionID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	return f.records[recordKey{studentID, sessionID}], nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ ListRecordsFilter) ([]attendanceModel.AttendanceRecordModel, int64, error) {
	var out []attendanceModel.AttendanceRecordModel
	for _, m := range f.records {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) BySession(_ context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceRecordModel, error) {
	var out []attendanceModel.AttendanceRecordModel
	for _, m := range f.records {
		if m.AttendanceRecordSessionID == sessionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, m *attendanceModel.AttendanceRecordModel) error {
	k := recordKey{m.AttendanceRecordStudentID, m.AttendanceRecordSessionID}
	if _, ok := f.records[k]; ok {
		return errors.New(`duplicate key value violates unique constraint "uq_attendance_records_natural" (SQLSTATE 23505)`)
	}
	m.AttendanceRecordID = uuid.New()
	f.records[k] = m
	return nil
}

func (f *fakeAttendanceRepo) Save(_ context.Context, m *attendanceModel.AttendanceRecordModel) error {
	f.records[recordKey{m.AttendanceRecordStudentID, m.AttendanceRecordSessionID}] = m
	f.saves++
	return nil
}

func (f *fakeAttendanceRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for k, m := range f.records {
		if m.AttendanceRecordID == id {
			delete(f.records, k)
		}
	}
	return nil
}

func (f *fakeAttendanceRepo) InTx(_ context.Context, fn func(Repository) error) error {
	return fn(f)
}

type fakeSessionReader struct {
	sessions map[uuid.UUID]*sessionModel.ScheduledSessionModel
}

func (f *fakeSessionReader) SessionByID(_ context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionReader) add(status sessionModel.SessionStatus) uuid.UUID {
	id := uuid.New()
	f.sessions[id] = &sessionModel.ScheduledSessionModel{SessionID: id, SessionStatus: status}
	return id
}

func newService() (*AttendanceRegisterService, *fakeAttendanceRepo, *fakeSessionReader) {
	repo := newFakeAttendanceRepo()
	sessions := &fakeSessionReader{sessions: map[uuid.UUID]*sessionModel.ScheduledSessionModel{}}
	return NewAttendanceRegisterService(repo, sessions), repo, sessions
}

func TestRecordAttendanceOnce(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	in := RecordAttendanceInput{
		StudentID:  uuid.New(),
		SessionID:  sessionID,
		Status:     attendanceModel.AttendancePresent,
		RecordedBy: uuid.New(),
	}
	if _, err := svc.RecordAttendance(context.Background(), in); err != nil {
		t.Fatalf("RecordAttendance: %v", err)
	}

	_, err := svc.RecordAttendance(context.Background(), in)
	if helper.KindOf(err) != helper.ErrKindDuplicate {
		t.Fatalf("second write error kind = %v, want duplicate", helper.KindOf(err))
	}
}

func TestRecordAttendanceTerminalSession(t *testing.T) {
	svc, _, sessions := newService()

	for _, status := range []sessionModel.SessionStatus{sessionModel.SessionCancelled, sessionModel.SessionRescheduled} {
		sessionID := sessions.add(status)
		_, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
			StudentID: uuid.New(),
			SessionID: sessionID,
			Status:    attendanceModel.AttendancePresent,
		})
		if helper.KindOf(err) != helper.ErrKindConflict {
			t.Fatalf("%s session error kind = %v, want conflict", status, helper.KindOf(err))
		}
	}
}

func TestRecordAttendanceUnknownStatus(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	_, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
		StudentID: uuid.New(),
		SessionID: sessionID,
		Status:    attendanceModel.AttendanceStatus("sleeping"),
	})
	if helper.KindOf(err) != helper.ErrKindValidation {
		t.Fatalf("error kind = %v, want validation", helper.KindOf(err))
	}
}

func TestBulkRecordCollectsDuplicatesAndValidation(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	repeated := uuid.New()
	if _, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
		StudentID: repeated,
		SessionID: sessionID,
		Status:    attendanceModel.AttendancePresent,
	}); err != nil {
		t.Fatalf("seed RecordAttendance: %v", err)
	}

	res, err := svc.BulkRecord(context.Background(), sessionID, []BulkAttendanceItem{
		{StudentID: uuid.New(), Status: attendanceModel.AttendanceLate},
		{StudentID: repeated, Status: attendanceModel.AttendancePresent},
		{StudentID: uuid.New(), Status: attendanceModel.AttendanceStatus("bogus")},
		{StudentID: uuid.New(), Status: attendanceModel.AttendanceJustified},
	}, uuid.New())
	if err != nil {
		t.Fatalf("BulkRecord: %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(res.Errors))
	}
	if res.Errors[0].Index != 1 || res.Errors[0].StudentID != repeated {
		t.Fatalf("first error = %+v, want the duplicate at index 1", res.Errors[0])
	}
	if res.Errors[1].Index != 2 {
		t.Fatalf("second error index = %d, want 2", res.Errors[1].Index)
	}
}

func TestBulkRecordTerminalSession(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionCancelled)

	_, err := svc.BulkRecord(context.Background(), sessionID, []BulkAttendanceItem{
		{StudentID: uuid.New(), Status: attendanceModel.AttendancePresent},
	}, uuid.New())
	if helper.KindOf(err) != helper.ErrKindConflict {
		t.Fatalf("error kind = %v, want conflict", helper.KindOf(err))
	}
}

func TestPatchRecord(t *testing.T) {
	svc, repo, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	m, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
		StudentID: uuid.New(),
		SessionID: sessionID,
		Status:    attendanceModel.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("RecordAttendance: %v", err)
	}

	justified := attendanceModel.AttendanceJustified
	note := "medical certificate"
	patched, err := svc.PatchRecord(context.Background(), m.AttendanceRecordID, PatchRecordInput{
		Status:       &justified,
		Observations: &note,
	})
	if err != nil {
		t.Fatalf("PatchRecord: %v", err)
	}
	if patched.AttendanceRecordStatus != attendanceModel.AttendanceJustified {
		t.Fatalf("status = %s, want justified", patched.AttendanceRecordStatus)
	}
	if patched.AttendanceRecordObservations == nil || *patched.AttendanceRecordObservations != note {
		t.Fatal("observations not applied")
	}
	if repo.saves != 1 {
		t.Fatalf("saves = %d, want 1", repo.saves)
	}
}

func TestPatchRecordTerminalSession(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	m, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
		StudentID: uuid.New(),
		SessionID: sessionID,
		Status:    attendanceModel.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("RecordAttendance: %v", err)
	}

	// The session moves to a terminal state; the record freezes with it.
	sessions.sessions[sessionID].SessionStatus = sessionModel.SessionCancelled

	justified := attendanceModel.AttendanceJustified
	_, err = svc.PatchRecord(context.Background(), m.AttendanceRecordID, PatchRecordInput{Status: &justified})
	if helper.KindOf(err) != helper.ErrKindConflict {
		t.Fatalf("error kind = %v, want conflict", helper.KindOf(err))
	}
}

func TestStatusPredicates(t *testing.T) {
	cases := []struct {
		status         attendanceModel.AttendanceStatus
		countedPresent bool
		countsMinimum  bool
	}{
		{attendanceModel.AttendancePresent, true, true},
		{attendanceModel.AttendanceLate, true, true},
		{attendanceModel.AttendanceJustified, false, true},
		{attendanceModel.AttendanceAbsent, false, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsCountedPresent(); got != tc.countedPresent {
			t.Errorf("%s.IsCountedPresent() = %v, want %v", tc.status, got, tc.countedPresent)
		}
		if got := tc.status.CountsTowardMinimum(); got != tc.countsMinimum {
			t.Errorf("%s.CountsTowardMinimum() = %v, want %v", tc.status, got, tc.countsMinimum)
		}
	}
}

func TestSessionSummary(t *testing.T) {
	svc, _, sessions := newService()
	sessionID := sessions.add(sessionModel.SessionHeld)

	for _, status := range []attendanceModel.AttendanceStatus{
		attendanceModel.AttendancePresent,
		attendanceModel.AttendancePresent,
		attendanceModel.AttendanceLate,
		attendanceModel.AttendanceJustified,
		attendanceModel.AttendanceAbsent,
	} {
		if _, err := svc.RecordAttendance(context.Background(), RecordAttendanceInput{
			StudentID: uuid.New(),
			SessionID: sessionID,
			Status:    status,
		}); err != nil {
			t.Fatalf("seed RecordAttendance: %v", err)
		}
	}

	sum, err := svc.SessionSummary(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("SessionSummary: %v", err)
	}
	if sum.TotalRecords != 5 {
		t.Fatalf("total = %d, want 5", sum.TotalRecords)
	}
	if sum.CountedPresent != 3 {
		t.Fatalf("counted present = %d, want 3 (present and late)", sum.CountedPresent)
	}
	if sum.Justified != 1 {
		t.Fatalf("justified = %d, want 1", sum.Justified)
	}
	if sum.ByStatus[attendanceModel.AttendancePresent] != 2 || sum.ByStatus[attendanceModel.AttendanceAbsent] != 1 {
		t.Fatalf("by status = %v", sum.ByStatus)
	}
}
