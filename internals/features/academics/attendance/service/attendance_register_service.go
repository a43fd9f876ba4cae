// file: internals/features/academics/attendance/service/attendance_register_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	helper "academia_backend/internals/helpers"
)

type AttendanceRegisterService struct {
	Repo     Repository
	Sessions SessionReader
}

func NewAttendanceRegisterService(repo Repository, sessions SessionReader) *AttendanceRegisterService {
	return &AttendanceRegisterService{Repo: repo, Sessions: sessions}
}

type RecordAttendanceInput struct {
	StudentID    uuid.UUID
	SessionID    uuid.UUID
	Status       attendanceModel.AttendanceStatus
	Observations *string
	RecordedBy   uuid.UUID
}

// RecordAttendance is a single create, never an upsert. A second write for
// the same (student, session) fails with a duplicate error; grades are
// revisable, attendance is not.
func (s *AttendanceRegisterService) RecordAttendance(ctx context.Context, in RecordAttendanceInput) (*attendanceModel.AttendanceRecordModel, error) {
	return s.recordOne(ctx, s.Repo, in)
}

func (s *AttendanceRegisterService) recordOne(ctx context.Context, repo Repository, in RecordAttendanceInput) (*attendanceModel.AttendanceRecordModel, error) {
	if !in.Status.Valid() {
		return nil, helper.ValidationErr("unknown attendance status %q", in.Status)
	}

	sess, err := s.Sessions.SessionByID(ctx, in.SessionID)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if sess == nil {
		return nil, helper.NotFoundErr("session %s not found", in.SessionID)
	}
	if !sess.SessionStatus.AllowsAttendance() {
		return nil, helper.ConflictErr("attendance cannot be recorded for a %s session", sess.SessionStatus)
	}

	m := &attendanceModel.AttendanceRecordModel{
		AttendanceRecordStudentID:    in.StudentID,
		AttendanceRecordSessionID:    in.SessionID,
		AttendanceRecordStatus:       in.Status,
		AttendanceRecordObservations: in.Observations,
		AttendanceRecordRecordedAt:   time.Now().UTC(),
		AttendanceRecordRecordedBy:   in.RecordedBy,
	}
	if err := repo.Create(ctx, m); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.DuplicateErr("attendance already recorded for student %s in this session", in.StudentID)
		}
		return nil, helper.InternalErr("failed to create attendance record", err)
	}
	return m, nil
}

/*
=========================================================

	BULK
	=========================================================
*/
type BulkAttendanceItem struct {
	StudentID    uuid.UUID
	Status       attendanceModel.AttendanceStatus
	Observations *string
}

type BulkAttendanceError struct {
	Index     int       `json:"index"`
	StudentID uuid.UUID `json:"student_id"`
	Message   string    `json:"message"`
}

type BulkAttendanceResult struct {
	Records []attendanceModel.AttendanceRecordModel `json:"records"`
	Errors  []BulkAttendanceError                   `json:"errors"`
}

// BulkRecord loops the single create inside one transaction. Validation and
// duplicate failures are collected per item; an unexpected storage failure
// rolls back the whole batch.
func (s *AttendanceRegisterService) BulkRecord(ctx context.Context, sessionID uuid.UUID, items []BulkAttendanceItem, recordedBy uuid.UUID) (*BulkAttendanceResult, error) {
	sess, err := s.Sessions.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if sess == nil {
		return nil, helper.NotFoundErr("session %s not found", sessionID)
	}
	if !sess.SessionStatus.AllowsAttendance() {
		return nil, helper.ConflictErr("attendance cannot be recorded for a %s session", sess.SessionStatus)
	}

	res := &BulkAttendanceResult{
		Records: []attendanceModel.AttendanceRecordModel{},
		Errors:  []BulkAttendanceError{},
	}
	err = s.Repo.InTx(ctx, func(repo Repository) error {
		for i, item := range items {
			m, err := s.recordOne(ctx, repo, RecordAttendanceInput{
				StudentID:    item.StudentID,
				SessionID:    sessionID,
				Status:       item.Status,
				Observations: item.Observations,
				RecordedBy:   recordedBy,
			})
			if err != nil {
				switch helper.KindOf(err) {
				case helper.ErrKindValidation, helper.ErrKindDuplicate:
					res.Errors = append(res.Errors, BulkAttendanceError{
						Index:     i,
						StudentID: item.StudentID,
						Message:   err.Error(),
					})
					continue
				}
				return err
			}
			res.Records = append(res.Records, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

/*
=========================================================

	READS / PATCH / DELETE
	=========================================================
*/
func (s *AttendanceRegisterService) GetRecord(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load attendance record", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("attendance record %s not found", id)
	}
	return m, nil
}

func (s *AttendanceRegisterService) ListRecords(ctx context.Context, f ListRecordsFilter) ([]attendanceModel.AttendanceRecordModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, helper.InternalErr("failed to list attendance records", err)
	}
	return rows, total, nil
}

type PatchRecordInput struct {
	Status       *attendanceModel.AttendanceStatus
	Observations *string
}

// PatchRecord mutates status/observations only, and only while the session
// still allows attendance writes.
func (s *AttendanceRegisterService) PatchRecord(ctx context.Context, id uuid.UUID, in PatchRecordInput) (*attendanceModel.AttendanceRecordModel, error) {
	m, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	sess, err := s.Sessions.SessionByID(ctx, m.AttendanceRecordSessionID)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if sess == nil {
		return nil, helper.NotFoundErr("session %s not found", m.AttendanceRecordSessionID)
	}
	if !sess.SessionStatus.AllowsAttendance() {
		return nil, helper.ConflictErr("attendance cannot be changed for a %s session", sess.SessionStatus)
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, helper.ValidationErr("unknown attendance status %q", *in.Status)
		}
		m.AttendanceRecordStatus = *in.Status
	}
	if in.Observations != nil {
		m.AttendanceRecordObservations = in.Observations
	}

	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, helper.InternalErr("failed to update attendance record", err)
	}
	return m, nil
}

func (s *AttendanceRegisterService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRecord(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete attendance record", err)
	}
	return nil
}

/*
=========================================================

	SESSION SUMMARY
	=========================================================
*/
type SessionAttendanceSummary struct {
	SessionID      uuid.UUID                                `json:"session_id"`
	TotalRecords   int                                      `json:"total_records"`
	ByStatus       map[attendanceModel.AttendanceStatus]int `json:"by_status"`
	CountedPresent int                                      `json:"counted_present"`
	Justified      int                                      `json:"justified"`
}

// SessionSummary tallies the session's records by status. It is computed on
// read, not maintained as a persisted counter.
func (s *AttendanceRegisterService) SessionSummary(ctx context.Context, sessionID uuid.UUID) (*SessionAttendanceSummary, error) {
	sess, err := s.Sessions.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, helper.InternalErr("failed to load session", err)
	}
	if sess == nil {
		return nil, helper.NotFoundErr("session %s not found", sessionID)
	}

	rows, err := s.Repo.BySession(ctx, sessionID)
	if err != nil {
		return nil, helper.InternalErr("failed to load attendance records", err)
	}

	sum := &SessionAttendanceSummary{
		SessionID: sessionID,
		ByStatus:  map[attendanceModel.AttendanceStatus]int{},
	}
	for i := range rows {
		st := rows[i].AttendanceRecordStatus
		sum.TotalRecords++
		sum.ByStatus[st]++
		if st.IsCountedPresent() {
			sum.CountedPresent++
		}
		if st.IsJustified() {
			sum.Justified++
		}
	}
	return sum, nil
}
