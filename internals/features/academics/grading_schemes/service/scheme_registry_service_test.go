// file: internals/features/academics/grading_schemes/service/scheme_registry_service_test.go
package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	helper "academia_backend/internals/helpers"
)

type fakeSchemeRepo struct {
	schemes     map[uuid.UUID]*schemeModel.GradingSchemeModel
	entryCounts map[uuid.UUID]int64
	softDeleted []uuid.UUID
}

func newFakeSchemeRepo() *fakeSchemeRepo {
	return &fakeSchemeRepo{
		schemes:     map[uuid.UUID]*schemeModel.GradingSchemeModel{},
		entryCounts: map[uuid.UUID]int64{},
	}
}

func (f *fakeSchemeRepo) add(m *schemeModel.GradingSchemeModel) *schemeModel.GradingSchemeModel {
	if m.GradingSchemeID == uuid.Nil {
		m.GradingSchemeID = uuid.New()
	}
	f.schemes[m.GradingSchemeID] = m
	return m
}

func (f *fakeSchemeRepo) ActiveByModuleGroup(_ context.Context, moduleID uuid.UUID, groupID *uuid.UUID) ([]schemeModel.GradingSchemeModel, error) {
	var out []schemeModel.GradingSchemeModel
	for _, m := range f.schemes {
		if m.GradingSchemeModuleID != moduleID || m.GradingSchemeStatus != schemeModel.GradingSchemeActive {
			continue
		}
		if m.GradingSchemeGroupID != nil {
			if groupID == nil || *m.GradingSchemeGroupID != *groupID {
				continue
			}
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GradingSchemeCreatedAt.After(out[j].GradingSchemeCreatedAt)
	})
	return out, nil
}

func (f *fakeSchemeRepo) ByID(_ context.Context, id uuid.UUID) (*schemeModel.GradingSchemeModel, error) {
	return f.schemes[id], nil
}

func (f *fakeSchemeRepo) List(_ context.Context, _ ListSchemesFilter) ([]schemeModel.GradingSchemeModel, int64, error) {
	var out []schemeModel.GradingSchemeModel
	for _, m := range f.schemes {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSchemeRepo) Create(_ context.Context, m *schemeModel.GradingSchemeModel) error {
	f.add(m)
	return nil
}

func (f *fakeSchemeRepo) Update(_ context.Context, m *schemeModel.GradingSchemeModel, _ bool) error {
	f.schemes[m.GradingSchemeID] = m
	return nil
}

func (f *fakeSchemeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(f.schemes, id)
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func (f *fakeSchemeRepo) DependentEntryCount(_ context.Context, schemeID uuid.UUID) (int64, error) {
	return f.entryCounts[schemeID], nil
}

func scheme(moduleID uuid.UUID, groupID *uuid.UUID, createdAt time.Time, weights ...float64) *schemeModel.GradingSchemeModel {
	m := &schemeModel.GradingSchemeModel{
		GradingSchemeID:        uuid.New(),
		GradingSchemeModuleID:  moduleID,
		GradingSchemeGroupID:   groupID,
		GradingSchemeName:      "scheme",
		GradingSchemeStatus:    schemeModel.GradingSchemeActive,
		GradingSchemeCreatedAt: createdAt,
	}
	for i, w := range weights {
		m.GradingSchemeGradeTypes = append(m.GradingSchemeGradeTypes, schemeModel.GradeTypeModel{
			GradeTypeID:            uuid.New(),
			GradeTypeSchemeID:      m.GradingSchemeID,
			GradeTypeName:          "type",
			GradeTypeWeightPercent: w,
			GradeTypeOrder:         i,
			GradeTypeMaxValue:      5,
		})
	}
	return m
}

func TestValidateWeights(t *testing.T) {
	svc := NewSchemeRegistryService(newFakeSchemeRepo())
	moduleID := uuid.New()

	cases := []struct {
		name    string
		weights []float64
		want    bool
	}{
		{"exact hundred", []float64{30, 30, 40}, true},
		{"within tolerance", []float64{33.33, 33.33, 33.335}, true},
		{"under", []float64{30, 30}, false},
		{"over", []float64{60, 60}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := scheme(moduleID, nil, time.Now(), tc.weights...)
			if got := svc.ValidateWeights(m); got != tc.want {
				t.Fatalf("ValidateWeights(%v) = %v, want %v", tc.weights, got, tc.want)
			}
		})
	}
}

func TestResolveActivePrefersNewest(t *testing.T) {
	repo := newFakeSchemeRepo()
	svc := NewSchemeRegistryService(repo)
	moduleID := uuid.New()
	groupID := uuid.New()

	older := scheme(moduleID, &groupID, time.Now().Add(-48*time.Hour), 100)
	newerModuleWide := scheme(moduleID, nil, time.Now(), 100)
	repo.add(older)
	repo.add(newerModuleWide)

	got, err := svc.ResolveActive(context.Background(), moduleID, &groupID)
	if err != nil {
		t.Fatalf("ResolveActive: %v", err)
	}
	if got == nil {
		t.Fatal("ResolveActive returned nil, want a scheme")
	}
	// Recency wins over group specificity.
	if got.GradingSchemeID != newerModuleWide.GradingSchemeID {
		t.Fatalf("resolved %s, want newer module-wide scheme %s", got.GradingSchemeID, newerModuleWide.GradingSchemeID)
	}
}

func TestResolveActiveNoCandidates(t *testing.T) {
	svc := NewSchemeRegistryService(newFakeSchemeRepo())

	got, err := svc.ResolveActive(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("ResolveActive: %v", err)
	}
	if got != nil {
		t.Fatalf("ResolveActive = %+v, want nil", got)
	}
}

func TestResolveActiveIgnoresOtherGroups(t *testing.T) {
	repo := newFakeSchemeRepo()
	svc := NewSchemeRegistryService(repo)
	moduleID := uuid.New()
	otherGroup := uuid.New()

	repo.add(scheme(moduleID, &otherGroup, time.Now(), 100))

	got, err := svc.ResolveActive(context.Background(), moduleID, nil)
	if err != nil {
		t.Fatalf("ResolveActive: %v", err)
	}
	if got != nil {
		t.Fatalf("scheme of another group leaked into module-wide resolution: %+v", got)
	}
}

func TestDeleteSchemeBlockedByEntries(t *testing.T) {
	repo := newFakeSchemeRepo()
	svc := NewSchemeRegistryService(repo)

	m := repo.add(scheme(uuid.New(), nil, time.Now(), 100))
	repo.entryCounts[m.GradingSchemeID] = 3

	err := svc.DeleteScheme(context.Background(), m.GradingSchemeID)
	if helper.KindOf(err) != helper.ErrKindConflict {
		t.Fatalf("DeleteScheme error kind = %v, want conflict", helper.KindOf(err))
	}
	if len(repo.softDeleted) != 0 {
		t.Fatal("scheme was deleted despite dependent entries")
	}
}

func TestDeleteSchemeSucceedsWithoutEntries(t *testing.T) {
	repo := newFakeSchemeRepo()
	svc := NewSchemeRegistryService(repo)

	m := repo.add(scheme(uuid.New(), nil, time.Now(), 100))
	if err := svc.DeleteScheme(context.Background(), m.GradingSchemeID); err != nil {
		t.Fatalf("DeleteScheme: %v", err)
	}
	if len(repo.softDeleted) != 1 || repo.softDeleted[0] != m.GradingSchemeID {
		t.Fatalf("soft deleted = %v, want [%s]", repo.softDeleted, m.GradingSchemeID)
	}
}

func TestDeleteSchemeNotFound(t *testing.T) {
	svc := NewSchemeRegistryService(newFakeSchemeRepo())

	err := svc.DeleteScheme(context.Background(), uuid.New())
	if helper.KindOf(err) != helper.ErrKindNotFound {
		t.Fatalf("DeleteScheme error kind = %v, want not_found", helper.KindOf(err))
	}
}
