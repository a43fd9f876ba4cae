// file: internals/features/academics/grading_schemes/service/repository.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
)

// ListSchemesFilter narrows List; zero values mean "no filter".
type ListSchemesFilter struct {
	ModuleID *uuid.UUID
	GroupID  *uuid.UUID
	Status   string
	Offset   int
	Limit    int
}

// Repository is the explicit data boundary of the scheme registry; every
// method returns typed results, no relation strings leak upward.
type Repository interface {
	ActiveByModuleGroup(ctx context.Context, moduleID uuid.UUID, groupID *uuid.UUID) ([]schemeModel.GradingSchemeModel, error)
	ByID(ctx context.Context, id uuid.UUID) (*schemeModel.GradingSchemeModel, error)
	List(ctx context.Context, f ListSchemesFilter) ([]schemeModel.GradingSchemeModel, int64, error)
	Create(ctx context.Context, m *schemeModel.GradingSchemeModel) error
	Update(ctx context.Context, m *schemeModel.GradingSchemeModel, replaceTypes bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	DependentEntryCount(ctx context.Context, schemeID uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ActiveByModuleGroup(ctx context.Context, moduleID uuid.UUID, groupID *uuid.UUID) ([]schemeModel.GradingSchemeModel, error) {
	tx := r.db.WithContext(ctx).
		Preload("GradingSchemeGradeTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("grade_type_order ASC")
		}).
		Where("grading_scheme_module_id = ? AND grading_scheme_status = ?", moduleID, schemeModel.GradingSchemeActive)

	if groupID != nil {
		tx = tx.Where("grading_scheme_group_id = ? OR grading_scheme_group_id IS NULL", *groupID)
	} else {
		tx = tx.Where("grading_scheme_group_id IS NULL")
	}

	var rows []schemeModel.GradingSchemeModel
	if err := tx.Order("grading_scheme_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*schemeModel.GradingSchemeModel, error) {
	var m schemeModel.GradingSchemeModel
	err := r.db.WithContext(ctx).
		Preload("GradingSchemeGradeTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("grade_type_order ASC")
		}).
		Where("grading_scheme_id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f ListSchemesFilter) ([]schemeModel.GradingSchemeModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&schemeModel.GradingSchemeModel{})
	if f.ModuleID != nil {
		tx = tx.Where("grading_scheme_module_id = ?", *f.ModuleID)
	}
	if f.GroupID != nil {
		tx = tx.Where("grading_scheme_group_id = ?", *f.GroupID)
	}
	if f.Status != "" {
		tx = tx.Where("grading_scheme_status = ?", f.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []schemeModel.GradingSchemeModel
	err := tx.
		Preload("GradingSchemeGradeTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("grade_type_order ASC")
		}).
		Order("grading_scheme_created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Create(ctx context.Context, m *schemeModel.GradingSchemeModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Update saves the scheme header and, when replaceTypes is set, swaps the
// full grade-type list inside one transaction.
func (r *gormRepository) Update(ctx context.Context, m *schemeModel.GradingSchemeModel, replaceTypes bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("GradingSchemeGradeTypes").Save(m).Error; err != nil {
			return err
		}
		if !replaceTypes {
			return nil
		}
		if err := tx.Where("grade_type_scheme_id = ?", m.GradingSchemeID).
			Delete(&schemeModel.GradeTypeModel{}).Error; err != nil {
			return err
		}
		for i := range m.GradingSchemeGradeTypes {
			m.GradingSchemeGradeTypes[i].GradeTypeID = uuid.Nil
			m.GradingSchemeGradeTypes[i].GradeTypeSchemeID = m.GradingSchemeID
		}
		if len(m.GradingSchemeGradeTypes) > 0 {
			if err := tx.Create(&m.GradingSchemeGradeTypes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("grading_scheme_id = ?", id).
		Delete(&schemeModel.GradingSchemeModel{}).Error
}

func (r *gormRepository) DependentEntryCount(ctx context.Context, schemeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("grade_entries").
		Where("grade_entry_scheme_id = ? AND grade_entry_deleted_at IS NULL", schemeID).
		Count(&count).Error
	return count, err
}
