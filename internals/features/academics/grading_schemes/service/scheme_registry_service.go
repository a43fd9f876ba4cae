// file: internals/features/academics/grading_schemes/service/scheme_registry_service.go
package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	helper "academia_backend/internals/helpers"
)

// weightTolerance is the slack allowed around a 100% weight sum.
const weightTolerance = 0.01

type SchemeRegistryService struct {
	Repo Repository
}

func NewSchemeRegistryService(repo Repository) *SchemeRegistryService {
	return &SchemeRegistryService{Repo: repo}
}

// ResolveActive picks the grading scheme that applies to (module, group).
// Candidates are active schemes of the module whose group matches or is
// NULL (module-wide fallback); the MOST RECENTLY CREATED candidate wins.
// Resolution is recency-ordered, not specificity-ordered: a newer
// module-wide scheme beats an older group-specific one. Returns nil when
// nothing is configured.
func (s *SchemeRegistryService) ResolveActive(ctx context.Context, moduleID uuid.UUID, groupID *uuid.UUID) (*schemeModel.GradingSchemeModel, error) {
	rows, err := s.Repo.ActiveByModuleGroup(ctx, moduleID, groupID)
	if err != nil {
		return nil, helper.InternalErr("failed to resolve grading scheme", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ValidateWeights reports whether the scheme's weights sum to 100 within
// tolerance. Advisory only: create/update never call this implicitly.
func (s *SchemeRegistryService) ValidateWeights(m *schemeModel.GradingSchemeModel) bool {
	return math.Abs(m.WeightSum()-100) < weightTolerance
}

func (s *SchemeRegistryService) CreateScheme(ctx context.Context, m *schemeModel.GradingSchemeModel) error {
	if err := s.Repo.Create(ctx, m); err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.DuplicateErr("a grading scheme with this identity already exists")
		}
		return helper.InternalErr("failed to create grading scheme", err)
	}
	return nil
}

func (s *SchemeRegistryService) GetScheme(ctx context.Context, id uuid.UUID) (*schemeModel.GradingSchemeModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, helper.InternalErr("failed to load grading scheme", err)
	}
	if m == nil {
		return nil, helper.NotFoundErr("grading scheme %s not found", id)
	}
	return m, nil
}

func (s *SchemeRegistryService) ListSchemes(ctx context.Context, f ListSchemesFilter) ([]schemeModel.GradingSchemeModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, helper.InternalErr("failed to list grading schemes", err)
	}
	return rows, total, nil
}

// UpdateScheme saves header changes; replaceTypes swaps the grade-type
// list wholesale (the only sync mode the write path supports).
func (s *SchemeRegistryService) UpdateScheme(ctx context.Context, m *schemeModel.GradingSchemeModel, replaceTypes bool) error {
	if err := s.Repo.Update(ctx, m, replaceTypes); err != nil {
		return helper.InternalErr("failed to update grading scheme", err)
	}
	return nil
}

// DeleteScheme refuses to remove a scheme that grade entries still
// reference.
func (s *SchemeRegistryService) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return helper.InternalErr("failed to load grading scheme", err)
	}
	if m == nil {
		return helper.NotFoundErr("grading scheme %s not found", id)
	}
	n, err := s.Repo.DependentEntryCount(ctx, id)
	if err != nil {
		return helper.InternalErr("failed to check grade entries", err)
	}
	if n > 0 {
		return helper.ConflictErr("grading scheme has %d grade entries and cannot be deleted", n)
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return helper.InternalErr("failed to delete grading scheme", err)
	}
	return nil
}
