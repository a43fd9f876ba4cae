// file: internals/features/academics/grades/service/grade_ledger_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	gradeModel "academia_backend/internals/features/academics/grades/model"
	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	helper "academia_backend/internals/helpers"
)

type naturalKey struct {
	student, group, module, gradeType uuid.UUID
}

type fakeGradeRepo struct {
	gradeTypes map[uuid.UUID]*schemeModel.GradeTypeModel
	entries    map[naturalKey]*gradeModel.GradeEntryModel
	creates    int
	saves      int
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{
		gradeTypes: map[uuid.UUID]*schemeModel.GradeTypeModel{},
		entries:    map[naturalKey]*gradeModel.GradeEntryModel{},
	}
}

func (f *fakeGradeRepo) addGradeType(weight, min, max float64) *schemeModel.GradeTypeModel {
	gt := &schemeModel.GradeTypeModel{
		GradeTypeID:            uuid.New(),
		GradeTypeSchemeID:      uuid.New(),
		GradeTypeName:          "Midterm",
		GradeTypeWeightPercent: weight,
		GradeTypeMinValue:      min,
		GradeTypeMaxValue:      max,
	}
	f.gradeTypes[gt.GradeTypeID] = gt
	return gt
}

func (f *fakeGradeRepo) GradeTypeByID(_ context.Context, id uuid.UUID) (*schemeModel.GradeTypeModel, error) {
	return f.gradeTypes[id], nil
}

func (f *fakeGradeRepo) ByNaturalKey(_ context.Context, studentID, groupID, moduleID, gradeTypeID uuid.UUID) (*gradeModel.GradeEntryModel, error) {
	return f.entries[naturalKey{studentID, groupID, moduleID, gradeTypeID}], nil
}

func (f *fakeGradeRepo) ByID(_ context.Context, id uuid.UUID) (*gradeModel.GradeEntryModel, error) {
	for _, e := range f.entries {
		if e.GradeEntryID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeGradeRepo) List(_ context.Context, _ ListEntriesFilter) ([]gradeModel.GradeEntryModel, int64, error) {
	var out []gradeModel.GradeEntryModel
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGradeRepo) Create(_ context.Context, m *gradeModel.GradeEntryModel) error {
	m.GradeEntryID = uuid.New()
	f.entries[naturalKey{m.GradeEntryStudentID, m.GradeEntryGroupID, m.GradeEntryModuleID, m.GradeEntryGradeTypeID}] = m
	f.creates++
	return nil
}

func (f *fakeGradeRepo) Save(_ context.Context, m *gradeModel.GradeEntryModel) error {
	f.entries[naturalKey{m.GradeEntryStudentID, m.GradeEntryGroupID, m.GradeEntryModuleID, m.GradeEntryGradeTypeID}] = m
	f.saves++
	return nil
}

func (f *fakeGradeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for k, e := range f.entries {
		if e.GradeEntryID == id {
			delete(f.entries, k)
		}
	}
	return nil
}

func (f *fakeGradeRepo) InTx(_ context.Context, fn func(Repository) error) error {
	return fn(f)
}

func TestRecordGradeComputesWeightedValue(t *testing.T) {
	repo := newFakeGradeRepo()
	svc := NewGradeLedgerService(repo)
	gt := repo.addGradeType(30, 0, 5)

	m, err := svc.RecordGrade(context.Background(), RecordGradeInput{
		StudentID:   uuid.New(),
		GroupID:     uuid.New(),
		ModuleID:    uuid.New(),
		GradeTypeID: gt.GradeTypeID,
		RawValue:    4.0,
		RecordedBy:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("RecordGrade: %v", err)
	}
	if m.GradeEntryWeightedValue != 1.2 {
		t.Fatalf("weighted value = %v, want 1.2", m.GradeEntryWeightedValue)
	}
	if m.GradeEntryStatus != gradeModel.GradeEntryRegistered {
		t.Fatalf("status = %s, want registered", m.GradeEntryStatus)
	}
}

func TestRecordGradeOutOfRange(t *testing.T) {
	repo := newFakeGradeRepo()
	svc := NewGradeLedgerService(repo)
	gt := repo.addGradeType(30, 0, 5)

	_, err := svc.RecordGrade(context.Background(), RecordGradeInput{
		StudentID:   uuid.New(),
		GroupID:     uuid.New(),
		ModuleID:    uuid.New(),
		GradeTypeID: gt.GradeTypeID,
		RawValue:    5.5,
	})
	if helper.KindOf(err) != helper.ErrKindValidation {
		t.Fatalf("error kind = %v, want validation", helper.KindOf(err))
	}
	if repo.creates != 0 {
		t.Fatal("out-of-range value was persisted")
	}
}

func TestRecordGradeUnknownType(t *testing.T) {
	svc := NewGradeLedgerService(newFakeGradeRepo())

	_, err := svc.RecordGrade(context.Background(), RecordGradeInput{
		StudentID:   uuid.New(),
		GroupID:     uuid.New(),
		ModuleID:    uuid.New(),
		GradeTypeID: uuid.New(),
		RawValue:    3,
	})
	if helper.KindOf(err) != helper.ErrKindNotFound {
		t.Fatalf("error kind = %v, want not_found", helper.KindOf(err))
	}
}

func TestRecordGradeUpsertsInPlace(t *testing.T) {
	repo := newFakeGradeRepo()
	svc := NewGradeLedgerService(repo)
	gt := repo.addGradeType(50, 0, 20)

	in := RecordGradeInput{
		StudentID:   uuid.New(),
		GroupID:     uuid.New(),
		ModuleID:    uuid.New(),
		GradeTypeID: gt.GradeTypeID,
		RawValue:    10,
		RecordedBy:  uuid.New(),
	}
	first, err := svc.RecordGrade(context.Background(), in)
	if err != nil {
		t.Fatalf("first RecordGrade: %v", err)
	}

	in.RawValue = 16
	second, err := svc.RecordGrade(context.Background(), in)
	if err != nil {
		t.Fatalf("second RecordGrade: %v", err)
	}

	if second.GradeEntryID != first.GradeEntryID {
		t.Fatal("second write created a new row instead of updating in place")
	}
	if second.GradeEntryWeightedValue != 8 {
		t.Fatalf("weighted value after update = %v, want 8", second.GradeEntryWeightedValue)
	}
	if repo.creates != 1 || repo.saves != 1 {
		t.Fatalf("creates=%d saves=%d, want 1 and 1", repo.creates, repo.saves)
	}
}

func TestRecordBulkCollectsValidationErrors(t *testing.T) {
	repo := newFakeGradeRepo()
	svc := NewGradeLedgerService(repo)
	gt := repo.addGradeType(25, 0, 5)

	okStudent := uuid.New()
	badStudent := uuid.New()

	res, err := svc.RecordBulk(context.Background(), uuid.New(), uuid.New(), gt.GradeTypeID,
		[]BulkGradeItem{
			{StudentID: okStudent, RawValue: 4},
			{StudentID: badStudent, RawValue: 9},
			{StudentID: uuid.New(), RawValue: 2},
		}, uuid.New())
	if err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}

	if res.CreatedCount != 2 {
		t.Fatalf("created = %d, want 2", res.CreatedCount)
	}
	if res.UpdatedCount != 0 {
		t.Fatalf("updated = %d, want 0", res.UpdatedCount)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(res.Errors))
	}
	if res.Errors[0].Index != 1 || res.Errors[0].StudentID != badStudent {
		t.Fatalf("error = %+v, want index 1 for the out-of-range student", res.Errors[0])
	}
}

func TestRecordBulkCountsUpdates(t *testing.T) {
	repo := newFakeGradeRepo()
	svc := NewGradeLedgerService(repo)
	gt := repo.addGradeType(25, 0, 5)

	groupID := uuid.New()
	moduleID := uuid.New()
	student := uuid.New()

	if _, err := svc.RecordGrade(context.Background(), RecordGradeInput{
		StudentID:   student,
		GroupID:     groupID,
		ModuleID:    moduleID,
		GradeTypeID: gt.GradeTypeID,
		RawValue:    2,
	}); err != nil {
		t.Fatalf("seed RecordGrade: %v", err)
	}

	res, err := svc.RecordBulk(context.Background(), groupID, moduleID, gt.GradeTypeID,
		[]BulkGradeItem{
			{StudentID: student, RawValue: 3},
			{StudentID: uuid.New(), RawValue: 4},
		}, uuid.New())
	if err != nil {
		t.Fatalf("RecordBulk: %v", err)
	}
	if res.CreatedCount != 1 || res.UpdatedCount != 1 {
		t.Fatalf("created=%d updated=%d, want 1 and 1", res.CreatedCount, res.UpdatedCount)
	}
}

func TestRecordBulkUnknownTypeFailsWhole(t *testing.T) {
	svc := NewGradeLedgerService(newFakeGradeRepo())

	_, err := svc.RecordBulk(context.Background(), uuid.New(), uuid.New(), uuid.New(),
		[]BulkGradeItem{{StudentID: uuid.New(), RawValue: 3}}, uuid.New())
	if helper.KindOf(err) != helper.ErrKindNotFound {
		t.Fatalf("error kind = %v, want not_found", helper.KindOf(err))
	}
}
