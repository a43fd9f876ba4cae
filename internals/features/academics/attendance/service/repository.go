// file: internals/features/academics/attendance/service/repository.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	sessionModel "academia_backend/internals/features/academics/sessions/model"
)

type ListRecordsFilter struct {
	StudentID *uuid.UUID
	SessionID *uuid.UUID
	Status    string
	Offset    int
	Limit     int
}

type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	ByStudentSession(ctx context.Context, studentID, sessionID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	List(ctx context.Context, f ListRecordsFilter) ([]attendanceModel.AttendanceRecordModel, int64, error)
	BySession(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceRecordModel, error)
	Create(ctx context.Context, m *attendanceModel.AttendanceRecordModel) error
	Save(ctx context.Context, m *attendanceModel.AttendanceRecordModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	InTx(ctx context.Context, fn func(Repository) error) error
}

// SessionReader gives the register a view of the session state machine
// without owning the sessions table.
type SessionReader interface {
	SessionByID(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

type gormSessionReader struct {
	db *gorm.DB
}

func NewSessionReader(db *gorm.DB) SessionReader {
	return &gormSessionReader{db: db}
}

func (r *gormSessionReader) SessionByID(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
	var m sessionModel.ScheduledSessionModel
	err := r.db.WithContext(ctx).Where("session_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	var m attendanceModel.AttendanceRecordModel
	err := r.db.WithContext(ctx).Where("attendance_record_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) ByStudentSession(ctx context.Context, studentID, sessionID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	var m attendanceModel.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Where("attendance_record_student_id = ? AND attendance_record_session_id = ?", studentID, sessionID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f ListRecordsFilter) ([]attendanceModel.AttendanceRecordModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&attendanceModel.AttendanceRecordModel{})
	if f.StudentID != nil {
		tx = tx.Where("attendance_record_student_id = ?", *f.StudentID)
	}
	if f.SessionID != nil {
		tx = tx.Where("attendance_record_session_id = ?", *f.SessionID)
	}
	if f.Status != "" {
		tx = tx.Where("attendance_record_status = ?", f.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []attendanceModel.AttendanceRecordModel
	err := tx.Order("attendance_record_recorded_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) BySession(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceRecordModel, error) {
	var rows []attendanceModel.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Where("attendance_record_session_id = ?", sessionID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Create(ctx context.Context, m *attendanceModel.AttendanceRecordModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Save(ctx context.Context, m *attendanceModel.AttendanceRecordModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("attendance_record_id = ?", id).
		Delete(&attendanceModel.AttendanceRecordModel{}).Error
}

func (r *gormRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
