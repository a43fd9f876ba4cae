// file: internals/features/academics/sessions/service/repository.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "academia_backend/internals/features/academics/sessions/model"
)

type ListSessionsFilter struct {
	GroupID  *uuid.UUID
	CycleID  *uuid.UUID
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error)
	ByNaturalKey(ctx context.Context, groupID, cycleID uuid.UUID, date time.Time, startTime string) (*sessionModel.ScheduledSessionModel, error)
	List(ctx context.Context, f ListSessionsFilter) ([]sessionModel.ScheduledSessionModel, int64, error)
	Create(ctx context.Context, m *sessionModel.ScheduledSessionModel) error
	Save(ctx context.Context, m *sessionModel.ScheduledSessionModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	RuleByID(ctx context.Context, id uuid.UUID) (*sessionModel.SessionGenerationRuleModel, error)
	RuleList(ctx context.Context, groupID *uuid.UUID) ([]sessionModel.SessionGenerationRuleModel, error)
	RuleCreate(ctx context.Context, m *sessionModel.SessionGenerationRuleModel) error
	RuleSoftDelete(ctx context.Context, id uuid.UUID) error

	InTx(ctx context.Context, fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*sessionModel.ScheduledSessionModel, error) {
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

func (r *gormRepository) ByNaturalKey(ctx context.Context, groupID, cycleID uuid.UUID, date time.Time, startTime string) (*sessionModel.ScheduledSessionModel, error) {
	var m sessionModel.ScheduledSessionModel
	err := r.db.WithContext(ctx).
		Where(`
			session_group_id = ?
			AND session_cycle_id = ?
			AND session_date = ?
			AND session_start_time = ?
		`, groupID, cycleID, date, startTime).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f ListSessionsFilter) ([]sessionModel.ScheduledSessionModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&sessionModel.ScheduledSessionModel{})
	if f.GroupID != nil {
		tx = tx.Where("session_group_id = ?", *f.GroupID)
	}
	if f.CycleID != nil {
		tx = tx.Where("session_cycle_id = ?", *f.CycleID)
	}
	if f.Status != "" {
		tx = tx.Where("session_status = ?", f.Status)
	}
	if f.DateFrom != nil {
		tx = tx.Where("session_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("session_date <= ?", *f.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []sessionModel.ScheduledSessionModel
	err := tx.Order("session_date ASC, session_start_time ASC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Create(ctx context.Context, m *sessionModel.ScheduledSessionModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Save(ctx context.Context, m *sessionModel.ScheduledSessionModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&sessionModel.ScheduledSessionModel{}).Error
}

func (r *gormRepository) RuleByID(ctx context.Context, id uuid.UUID) (*sessionModel.SessionGenerationRuleModel, error) {
	var m sessionModel.SessionGenerationRuleModel
	err := r.db.WithContext(ctx).Where("session_generation_rule_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) RuleList(ctx context.Context, groupID *uuid.UUID) ([]sessionModel.SessionGenerationRuleModel, error) {
	tx := r.db.WithContext(ctx).Model(&sessionModel.SessionGenerationRuleModel{})
	if groupID != nil {
		tx = tx.Where("session_generation_rule_group_id = ?", *groupID)
	}
	var rows []sessionModel.SessionGenerationRuleModel
	if err := tx.Order("session_generation_rule_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) RuleCreate(ctx context.Context, m *sessionModel.SessionGenerationRuleModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) RuleSoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_generation_rule_id = ?", id).
		Delete(&sessionModel.SessionGenerationRuleModel{}).Error
}

func (r *gormRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
