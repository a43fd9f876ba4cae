// file: internals/features/academics/attendance_policies/service/repository.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "academia_backend/internals/features/academics/attendance/model"
	policyModel "academia_backend/internals/features/academics/attendance_policies/model"
	sessionModel "academia_backend/internals/features/academics/sessions/model"
)

type ListPoliciesFilter struct {
	CourseID *uuid.UUID
	ModuleID *uuid.UUID
	Offset   int
	Limit    int
}

type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (*policyModel.AttendancePolicyModel, error)
	List(ctx context.Context, f ListPoliciesFilter) ([]policyModel.AttendancePolicyModel, int64, error)
	// Candidates returns the policies whose scope could match
	// (courseID, moduleID) and whose validity window covers asOf,
	// newest first.
	Candidates(ctx context.Context, courseID uuid.UUID, moduleID *uuid.UUID, asOf time.Time) ([]policyModel.AttendancePolicyModel, error)
	Create(ctx context.Context, m *policyModel.AttendancePolicyModel) error
	Save(ctx context.Context, m *policyModel.AttendancePolicyModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ComplianceReader supplies the session and attendance facts the resolver
// aggregates over. Sessions are tied to a course through the student's
// enrolled groups.
type ComplianceReader interface {
	ScopeSessions(ctx context.Context, studentID, courseID uuid.UUID, asOf time.Time) ([]sessionModel.ScheduledSessionModel, error)
	StudentStatuses(ctx context.Context, studentID uuid.UUID, sessionIDs []uuid.UUID) (map[uuid.UUID]attendanceModel.AttendanceStatus, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func NewComplianceReader(db *gorm.DB) ComplianceReader {
	return &gormRepository{db: db}
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*policyModel.AttendancePolicyModel, error) {
	var m policyModel.AttendancePolicyModel
	err := r.db.WithContext(ctx).Where("attendance_policy_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f ListPoliciesFilter) ([]policyModel.AttendancePolicyModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&policyModel.AttendancePolicyModel{})
	if f.CourseID != nil {
		tx = tx.Where("attendance_policy_course_id = ?", *f.CourseID)
	}
	if f.ModuleID != nil {
		tx = tx.Where("attendance_policy_module_id = ?", *f.ModuleID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []policyModel.AttendancePolicyModel
	err := tx.Order("attendance_policy_created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Candidates(ctx context.Context, courseID uuid.UUID, moduleID *uuid.UUID, asOf time.Time) ([]policyModel.AttendancePolicyModel, error) {
	tx := r.db.WithContext(ctx).Model(&policyModel.AttendancePolicyModel{}).
		Where("attendance_policy_course_id IS NULL OR attendance_policy_course_id = ?", courseID).
		Where("attendance_policy_valid_from IS NULL OR attendance_policy_valid_from <= ?", asOf).
		Where("attendance_policy_valid_to IS NULL OR attendance_policy_valid_to >= ?", asOf)
	if moduleID != nil {
		tx = tx.Where("attendance_policy_module_id IS NULL OR attendance_policy_module_id = ?", *moduleID)
	} else {
		tx = tx.Where("attendance_policy_module_id IS NULL")
	}

	var rows []policyModel.AttendancePolicyModel
	if err := tx.Order("attendance_policy_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Create(ctx context.Context, m *policyModel.AttendancePolicyModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Save(ctx context.Context, m *policyModel.AttendancePolicyModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("attendance_policy_id = ?", id).
		Delete(&policyModel.AttendancePolicyModel{}).Error
}

// Sessions of every group of the course the student is enrolled in, up to
// asOf. Cancelled instances are filtered out by the caller's predicate, not
// here, so the resolver decides what counts.
func (r *gormRepository) ScopeSessions(ctx context.Context, studentID, courseID uuid.UUID, asOf time.Time) ([]sessionModel.ScheduledSessionModel, error) {
	var rows []sessionModel.ScheduledSessionModel
	err := r.db.WithContext(ctx).
		Table("scheduled_sessions").
		Joins("JOIN enrollments ON enrollments.enrollment_group_id = scheduled_sessions.session_group_id").
		Joins("JOIN class_groups ON class_groups.class_group_id = scheduled_sessions.session_group_id").
		Where("enrollments.enrollment_student_id = ?", studentID).
		Where("class_groups.class_group_course_id = ?", courseID).
		Where("enrollments.enrollment_deleted_at IS NULL").
		Where("class_groups.class_group_deleted_at IS NULL").
		Where("scheduled_sessions.session_deleted_at IS NULL").
		Where("scheduled_sessions.session_date <= ?", asOf).
		Order("scheduled_sessions.session_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) StudentStatuses(ctx context.Context, studentID uuid.UUID, sessionIDs []uuid.UUID) (map[uuid.UUID]attendanceModel.AttendanceStatus, error) {
	out := make(map[uuid.UUID]attendanceModel.AttendanceStatus, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}

	var rows []attendanceModel.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Where("attendance_record_student_id = ?", studentID).
		Where("attendance_record_session_id IN ?", sessionIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].AttendanceRecordSessionID] = rows[i].AttendanceRecordStatus
	}
	return out, nil
}
