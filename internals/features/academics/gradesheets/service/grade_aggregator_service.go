// file: internals/features/academics/gradesheets/service/grade_aggregator_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	gradeModel "academia_backend/internals/features/academics/grades/model"
	schemeModel "academia_backend/internals/features/academics/grading_schemes/model"
	helper "academia_backend/internals/helpers"
)

type GradeAggregatorService struct {
	Schemes     SchemeResolver
	Entries     EntryReader
	Enrollments EnrollmentReader
}

func NewGradeAggregatorService(schemes SchemeResolver, entries EntryReader, enrollments EnrollmentReader) *GradeAggregatorService {
	return &GradeAggregatorService{
		Schemes:     schemes,
		Entries:     entries,
		Enrollments: enrollments,
	}
}

type FinalGradeResult struct {
	StudentID       uuid.UUID  `json:"student_id"`
	ModuleID        uuid.UUID  `json:"module_id"`
	GroupID         *uuid.UUID `json:"group_id,omitempty"`
	GradingSchemeID uuid.UUID  `json:"grading_scheme_id"`
	FinalGrade      float64    `json:"final_grade"`
	TotalTypes      int        `json:"total_types"`
	TypesWithGrade  int        `json:"types_with_grade"`
	MissingTypes    []string   `json:"missing_types"`
	Complete        bool       `json:"complete"`
}

// FinalGrade sums the registered weighted values of a student under the
// active scheme of (module, group). A grade type counts as graded when any
// alive entry exists for it, whatever its status; only registered entries
// contribute to the sum.
func (s *GradeAggregatorService) FinalGrade(ctx context.Context, studentID, moduleID uuid.UUID, groupID *uuid.UUID) (*FinalGradeResult, error) {
	scheme, err := s.Schemes.ResolveActive(ctx, moduleID, groupID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, helper.NotFoundErr("no active grading scheme for module %s", moduleID)
	}

	entries, err := s.Entries.EntriesForScheme(ctx, studentID, moduleID, groupID, scheme.GradingSchemeID)
	if err != nil {
		return nil, helper.InternalErr("failed to load grade entries", err)
	}

	res := s.buildFinalGrade(studentID, moduleID, groupID, scheme, entries)
	return &res, nil
}

func (s *GradeAggregatorService) buildFinalGrade(studentID, moduleID uuid.UUID, groupID *uuid.UUID, scheme *schemeModel.GradingSchemeModel, entries []gradeModel.GradeEntryModel) FinalGradeResult {
	byType := make(map[uuid.UUID]*gradeModel.GradeEntryModel, len(entries))
	for i := range entries {
		byType[entries[i].GradeEntryGradeTypeID] = &entries[i]
	}

	res := FinalGradeResult{
		StudentID:       studentID,
		ModuleID:        moduleID,
		GroupID:         groupID,
		GradingSchemeID: scheme.GradingSchemeID,
		MissingTypes:    []string{},
	}
	var sum float64
	for _, gt := range scheme.GradingSchemeGradeTypes {
		res.TotalTypes++
		e, ok := byType[gt.GradeTypeID]
		if !ok {
			res.MissingTypes = append(res.MissingTypes, gt.GradeTypeName)
			continue
		}
		res.TypesWithGrade++
		if e.GradeEntryStatus == gradeModel.GradeEntryRegistered {
			sum += e.GradeEntryWeightedValue
		}
	}
	res.FinalGrade = helper.Round2(sum)
	res.Complete = len(res.MissingTypes) == 0
	return res
}

/*
=========================================================

	STUDENT GRADESHEET
	=========================================================
*/
type StudentGradesheet struct {
	StudentID       uuid.UUID          `json:"student_id"`
	CycleID         uuid.UUID          `json:"cycle_id"`
	Modules         []FinalGradeResult `json:"modules"`
	CompleteModules int                `json:"complete_modules"`
	OverallAverage  float64            `json:"overall_average"`
}

// StudentGradesheet walks every (group, module) the student follows in the
// cycle. Modules without an active scheme are skipped, and the overall
// average is the mean over complete modules only.
func (s *GradeAggregatorService) StudentGradesheet(ctx context.Context, studentID, cycleID uuid.UUID) (*StudentGradesheet, error) {
	pairs, err := s.Enrollments.GroupModulesForStudentCycle(ctx, studentID, cycleID)
	if err != nil {
		return nil, helper.InternalErr("failed to load enrollments", err)
	}

	sheet := &StudentGradesheet{
		StudentID: studentID,
		CycleID:   cycleID,
		Modules:   []FinalGradeResult{},
	}
	var completeSum float64
	for _, p := range pairs {
		groupID := p.GroupID
		scheme, err := s.Schemes.ResolveActive(ctx, p.ModuleID, &groupID)
		if err != nil {
			return nil, err
		}
		if scheme == nil {
			continue
		}
		entries, err := s.Entries.EntriesForScheme(ctx, studentID, p.ModuleID, &groupID, scheme.GradingSchemeID)
		if err != nil {
			return nil, helper.InternalErr("failed to load grade entries", err)
		}
		fg := s.buildFinalGrade(studentID, p.ModuleID, &groupID, scheme, entries)
		sheet.Modules = append(sheet.Modules, fg)
		if fg.Complete {
			sheet.CompleteModules++
			completeSum += fg.FinalGrade
		}
	}
	if sheet.CompleteModules > 0 {
		sheet.OverallAverage = helper.Round2(completeSum / float64(sheet.CompleteModules))
	}
	return sheet, nil
}

/*
=========================================================

	GROUP GRADESHEET
	=========================================================
*/
type GroupGradesheetLine struct {
	StudentID  uuid.UUID `json:"student_id"`
	FinalGrade float64   `json:"final_grade"`
	EntryCount int       `json:"entry_count"`
	Complete   bool      `json:"complete"`
}

type GroupGradesheet struct {
	GroupID          uuid.UUID             `json:"group_id"`
	ModuleID         uuid.UUID             `json:"module_id"`
	GradingSchemeID  uuid.UUID             `json:"grading_scheme_id"`
	TotalTypes       int                   `json:"total_types"`
	Students         []GroupGradesheetLine `json:"students"`
	CompleteStudents int                   `json:"complete_students"`
	GroupAverage     float64               `json:"group_average"`
}

// GroupGradesheet lists every enrolled student of the group against one
// module. Completeness is a count comparison: number of alive entries vs
// number of scheme types. The group average covers complete students only.
func (s *GradeAggregatorService) GroupGradesheet(ctx context.Context, groupID, moduleID uuid.UUID) (*GroupGradesheet, error) {
	taught, err := s.Enrollments.ModuleTaughtInGroup(ctx, groupID, moduleID)
	if err != nil {
		return nil, helper.InternalErr("failed to check group modules", err)
	}
	if !taught {
		return nil, helper.ConflictErr("module %s is not taught in group %s", moduleID, groupID)
	}

	scheme, err := s.Schemes.ResolveActive(ctx, moduleID, &groupID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, helper.NotFoundErr("no active grading scheme for module %s", moduleID)
	}

	students, err := s.Enrollments.StudentsInGroup(ctx, groupID)
	if err != nil {
		return nil, helper.InternalErr("failed to load group enrollments", err)
	}

	sheet := &GroupGradesheet{
		GroupID:         groupID,
		ModuleID:        moduleID,
		GradingSchemeID: scheme.GradingSchemeID,
		TotalTypes:      len(scheme.GradingSchemeGradeTypes),
		Students:        []GroupGradesheetLine{},
	}
	var completeSum float64
	for _, studentID := range students {
		entries, err := s.Entries.EntriesForScheme(ctx, studentID, moduleID, &groupID, scheme.GradingSchemeID)
		if err != nil {
			return nil, helper.InternalErr("failed to load grade entries", err)
		}
		var sum float64
		for i := range entries {
			if entries[i].GradeEntryStatus == gradeModel.GradeEntryRegistered {
				sum += entries[i].GradeEntryWeightedValue
			}
		}
		line := GroupGradesheetLine{
			StudentID:  studentID,
			FinalGrade: helper.Round2(sum),
			EntryCount: len(entries),
			Complete:   len(entries) == sheet.TotalTypes,
		}
		sheet.Students = append(sheet.Students, line)
		if line.Complete {
			sheet.CompleteStudents++
			completeSum += line.FinalGrade
		}
	}
	if sheet.CompleteStudents > 0 {
		sheet.GroupAverage = helper.Round2(completeSum / float64(sheet.CompleteStudents))
	}
	return sheet, nil
}
