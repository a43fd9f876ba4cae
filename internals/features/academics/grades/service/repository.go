// file: internals/features/academics/grades/service/repository.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeModel "academia_backend/internals/features/academics/grades/model"
	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
)

type ListEntriesFilter struct {
	StudentID   *uuid.UUID
	GroupID     *uuid.UUID
	ModuleID    *uuid.UUID
	GradeTypeID *uuid.UUID
	Status      string
	Offset      int
	Limit       int
}

// Repository is the ledger's data boundary. InTx runs fn against a
// repository bound to one transaction; bulk writes use it so a failed
// batch rolls back as a unit.
type Repository interface {
	GradeTypeByID(ctx context.Context, id uuid.UUID) (*schemeModel.GradeTypeModel, error)
	ByNaturalKey(ctx context.Context, studentID, groupID, moduleID, gradeTypeID uuid.UUID) (*gradeModel.GradeEntryModel, error)
	ByID(ctx context.Context, id uuid.UUID) (*gradeModel.GradeEntryModel, error)
	List(ctx context.Context, f ListEntriesFilter) ([]gradeModel.GradeEntryModel, int64, error)
	Create(ctx context.Context, m *gradeModel.GradeEntryModel) error
	Save(ctx context.Context, m *gradeModel.GradeEntryModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	InTx(ctx context.Context, fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GradeTypeByID(ctx context.Context, id uuid.UUID) (*schemeModel.GradeTypeModel, error) {
	var gt schemeModel.GradeTypeModel
	err := r.db.WithContext(ctx).Where("grade_type_id = ?", id).First(&gt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gt, nil
}

func (r *gormRepository) ByNaturalKey(ctx context.Context, studentID, groupID, moduleID, gradeTypeID uuid.UUID) (*gradeModel.GradeEntryModel, error) {
	var m gradeModel.GradeEntryModel
	err := r.db.WithContext(ctx).
		Where(`
			grade_entry_student_id = ?
			AND grade_entry_group_id = ?
			AND grade_entry_module_id = ?
			AND grade_entry_grade_type_id = ?
		`, studentID, groupID, moduleID, gradeTypeID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*gradeModel.GradeEntryModel, error) {
	var m gradeModel.GradeEntryModel
	err := r.db.WithContext(ctx).Where("grade_entry_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f ListEntriesFilter) ([]gradeModel.GradeEntryModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&gradeModel.GradeEntryModel{})
	if f.StudentID != nil {
		tx = tx.Where("grade_entry_student_id = ?", *f.StudentID)
	}
	if f.GroupID != nil {
		tx = tx.Where("grade_entry_group_id = ?", *f.GroupID)
	}
	if f.ModuleID != nil {
		tx = tx.Where("grade_entry_module_id = ?", *f.ModuleID)
	}
	if f.GradeTypeID != nil {
		tx = tx.Where("grade_entry_grade_type_id = ?", *f.GradeTypeID)
	}
	if f.Status != "" {
		tx = tx.Where("grade_entry_status = ?", f.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []gradeModel.GradeEntryModel
	err := tx.Order("grade_entry_recorded_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Create(ctx context.Context, m *gradeModel.GradeEntryModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Save(ctx context.Context, m *gradeModel.GradeEntryModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("grade_entry_id = ?", id).
		Delete(&gradeModel.GradeEntryModel{}).Error
}

func (r *gormRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
