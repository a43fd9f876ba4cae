// file: internals/features/academics/gradesheets/service/readers.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeModel "academia_backend/internals/features/academics/grades/model"
	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	schemeService "academia_backend/internals/features/academics/grading_schemes/service"
)

// GroupModule is one (group, module) pairing a student follows in a cycle.
type GroupModule struct {
	GroupID  uuid.UUID
	ModuleID uuid.UUID
}

// SchemeResolver yields the active grading scheme for a scope.
// The registry service satisfies it.
type SchemeResolver interface {
	ResolveActive(ctx context.Context, moduleID uuid.UUID, groupID *uuid.UUID) (*schemeModel.GradingSchemeModel, error)
}

// EntryReader returns every alive grade entry of a student under one scheme.
// Callers decide which statuses count toward the sum.
type EntryReader interface {
	EntriesForScheme(ctx context.Context, studentID, moduleID uuid.UUID, groupID *uuid.UUID, schemeID uuid.UUID) ([]gradeModel.GradeEntryModel, error)
}

// EnrollmentReader covers the collaborator tables the aggregator needs
// (enrollments, group_modules). They are owned elsewhere, so only reads.
type EnrollmentReader interface {
	GroupModulesForStudentCycle(ctx context.Context, studentID, cycleID uuid.UUID) ([]GroupModule, error)
	StudentsInGroup(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	ModuleTaughtInGroup(ctx context.Context, groupID, moduleID uuid.UUID) (bool, error)
}

/*
=========================================================

	GORM-BACKED READERS
	=========================================================
*/
type gormReaders struct {
	db *gorm.DB
}

func NewEntryReader(db *gorm.DB) EntryReader           { return &gormReaders{db: db} }
func NewEnrollmentReader(db *gorm.DB) EnrollmentReader { return &gormReaders{db: db} }

func NewSchemeResolver(db *gorm.DB) SchemeResolver {
	return schemeService.NewSchemeRegistryService(schemeService.NewRepository(db))
}

func (r *gormReaders) EntriesForScheme(ctx context.Context, studentID, moduleID uuid.UUID, groupID *uuid.UUID, schemeID uuid.UUID) ([]gradeModel.GradeEntryModel, error) {
	tx := r.db.WithContext(ctx).
		Where("grade_entry_student_id = ?", studentID).
		Where("grade_entry_module_id = ?", moduleID).
		Where("grade_entry_scheme_id = ?", schemeID)
	if groupID != nil {
		tx = tx.Where("grade_entry_group_id = ?", *groupID)
	}

	var rows []gradeModel.GradeEntryModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormReaders) GroupModulesForStudentCycle(ctx context.Context, studentID, cycleID uuid.UUID) ([]GroupModule, error) {
	var rows []GroupModule
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("group_modules.group_module_group_id AS group_id, group_modules.group_module_module_id AS module_id").
		Joins("JOIN group_modules ON group_modules.group_module_group_id = enrollments.enrollment_group_id").
		Where("enrollments.enrollment_student_id = ?", studentID).
		Where("enrollments.enrollment_cycle_id = ?", cycleID).
		Where("enrollments.enrollment_deleted_at IS NULL").
		Where("group_modules.group_module_deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormReaders) StudentsInGroup(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Where("enrollment_group_id = ?", groupID).
		Where("enrollment_deleted_at IS NULL").
		Order("enrollment_created_at ASC").
		Pluck("enrollment_student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gormReaders) ModuleTaughtInGroup(ctx context.Context, groupID, moduleID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("group_modules").
		Where("group_module_group_id = ?", groupID).
		Where("group_module_module_id = ?", moduleID).
		Where("group_module_deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
