// file: internals/features/academics/grades/service/grade_ledger_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	gradeModel "academia_backend/internals/features/academics/grades/model"
	helper "academia_backend/internals/helpers"
)

type GradeLedgerService struct {
	Repo Repository
}

func NewGradeLedgerService(repo Repository) *GradeLedgerService {
	return &GradeLedgerService{Repo: repo}
}

type RecordGradeInput struct {
	StudentID   uuid.UUID
	GroupID     uuid.UUID
	ModuleID    uuid.UUID
	GradeTypeID uuid.UUID
	RawValue    float64
	RecordedBy  uuid.UUID
}

// RecordGrade validates the raw value against the grade type's range,
// computes the weighted value and upserts on the natural key: an existing
// entry is updated in place, never duplicated. Grades stay revisable,
// unlike attendance, which is a one-shot fact.
func (s *GradeLedgerService) RecordGrade(ctx context.Context, in RecordGradeInput) (*gradeModel.GradeEntryModel, error) {
	m, _, err := s.recordOne(ctx, s.Repo, in)
	return m, err
}

func (s *GradeLedgerService) recordOne(ctx context.Context, repo Repository, in RecordGradeInput) (*gradeModel.GradeEntryModel, bool, error) {
	gt, err := repo.GradeTypeByID(ctx, in.GradeTypeID)
	if err != nil {
		return nil, false, helper.InternalErr("failed to load grade type", err)
	}
	if gt == nil {
		return nil, false, helper.NotFoundErr("grade type %s not found", in.GradeTypeID)
	}

	if in.RawValue < gt.GradeTypeMinValue || in.RawValue > gt.GradeTypeMaxValue {
		return nil, false, helper.ValidationErr(
			"raw value %.2f is outside the allowed range [%.2f, %.2f] of %s",
			in.RawValue, gt.GradeTypeMinValue, gt.GradeTypeMaxValue, gt.GradeTypeName,
		)
	}

	weighted := helper.Round2(in.RawValue * gt.GradeTypeWeightPercent / 100)
	now := time.Now().UTC()

	existing, err := repo.ByNaturalKey(ctx, in.StudentID, in.GroupID, in.ModuleID, in.GradeTypeID)
	if err != nil {
		return nil, false, helper.InternalErr("failed to look up grade entry", err)
	}

	if existing != nil {
		existing.GradeEntryRawValue = in.RawValue
		existing.GradeEntryWeightedValue = weighted
		existing.GradeEntryRecordedAt = now
		existing.GradeEntryRecordedBy = in.RecordedBy
		if err := repo.Save(ctx, existing); err != nil {
			return nil, false, helper.InternalErr("failed to update grade entry", err)
		}
		return existing, false, nil
	}

	m := &gradeModel.GradeEntryModel{
		GradeEntryStudentID:     in.StudentID,
		GradeEntryGroupID:       in.GroupID,
		GradeEntryModuleID:      in.ModuleID,
		GradeEntryGradeTypeID:   in.GradeTypeID,
		GradeEntrySchemeID:      gt.GradeTypeSchemeID,
		GradeEntryRawValue:      in.RawValue,
		GradeEntryWeightedValue: weighted,
		GradeEntryStatus:        gradeModel.GradeEntryRegistered,
		GradeEntryRecordedAt:    now,
		GradeEntryRecordedBy:    in.RecordedBy,
	}
	if err := repo.Create(ctx, m); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, false, helper.DuplicateErr("a grade entry already exists for this student and grade type")
		}
		return nil, false, helper.InternalErr("failed to create grade entry", err)
	}
	return m, true, nil
}

/*
=========================================================

	BULK
	=========================================================
*/
type BulkGradeItem struct {
	StudentID uuid.UUID
	RawValue  float64
}

type BulkGradeError struct {
	Index     int       `json:"index"`
	StudentID uuid.UUID `json:"student_id"`
	Message   string    `json:"message"`
}

type BulkGradeResult struct {
	CreatedCount int              `json:"created_count"`
	UpdatedCount int              `json:"updated_count"`
	Errors       []BulkGradeError `json:"errors"`
}

// RecordBulk applies the single-entry upsert to every item inside ONE
// transaction. Per-item validation failures are collected into the result
// and their rows are skipped; an unexpected storage failure aborts and
// rolls back the whole batch, including rows already counted as written.
func (s *GradeLedgerService) RecordBulk(ctx context.Context, groupID, moduleID, gradeTypeID uuid.UUID, items []BulkGradeItem, recordedBy uuid.UUID) (*BulkGradeResult, error) {
	res := &BulkGradeResult{Errors: []BulkGradeError{}}

	err := s.Repo.InTx(ctx, func(repo Repository) error {
		gt, err := repo.GradeTypeByID(ctx, gradeTypeID)
		if err != nil {
			return helper.InternalErr("failed to load grade type", err)
		}
		if gt == nil {
			return helper.NotFoundErr("grade type %s not found", gradeTypeID)
		}

		for i, item := range items {
			_, created, err := s.recordOne(ctx, repo, RecordGradeInput{
				StudentID:   item.StudentID,
				GroupID:     groupID,
				ModuleID:    moduleID,
				GradeTypeID: gradeTypeID,
				RawValue:    item.RawValue,
				RecordedBy:  recordedBy,
			})
			if err != nil {
				if helper.KindOf(err) == helper.ErrKindValidation {
					res.Errors = append(res.Errors, BulkGradeError{
						Index:     i,
						StudentID: item.StudentID,
						Message:   err.Error(),
					})
					continue
				}
				return err
			}
			if created {
				res.CreatedCount++
			} else {
				res.UpdatedCount++
			}
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

	READS / DELETE
	=========================================================
*/
func (s *GradeLedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*gradeModel.GradeEntryModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load grade entry", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("grade entry %s not found", id)
	}
	return m, nil
}

func (s *GradeLedgerService) ListEntries(ctx context.Context, f ListEntriesFilter) ([]gradeModel.GradeEntryModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, helper.InternalErr("failed to list grade entries", err)
	}
	return rows, total, nil
}

func (s *GradeLedgerService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return helper.InternalErr("failed to load grade entry", err)
	}
	if m == nil {
		return helper.NotFoundErr("grade entry %s not found", id)
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete grade entry", err)
	}
	return nil
}
