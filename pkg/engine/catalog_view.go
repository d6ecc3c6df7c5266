package engine

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// catalogView is the indexed, per-invocation view of an input catalog.
// Subjects are normalized here so the caller's catalog is never mutated.
type catalogView struct {
	catalog     *model.Catalog
	grid        *timegrid.Grid
	subjects    map[string]model.Subject
	subjectList []model.Subject
	instructors map[string]model.Instructor
	rooms       []model.Room
	cohorts     map[string]model.Cohort

	// eligible instructors per subject id, in catalog order
	eligible map[string][]model.Instructor
}

func newCatalogView(catalog *model.Catalog) (*catalogView, error) {
	if len(catalog.Subjects) == 0 || len(catalog.Instructors) == 0 ||
		len(catalog.Rooms) == 0 || len(catalog.Cohorts) == 0 {
		return nil, ErrEmptyCatalog
	}

	grid, err := catalog.Institution.Grid()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	view := &catalogView{
		catalog:     catalog,
		grid:        grid,
		subjects:    make(map[string]model.Subject, len(catalog.Subjects)),
		subjectList: make([]model.Subject, 0, len(catalog.Subjects)),
		instructors: make(map[string]model.Instructor, len(catalog.Instructors)),
		rooms:       append([]model.Room(nil), catalog.Rooms...),
		cohorts:     make(map[string]model.Cohort, len(catalog.Cohorts)),
		eligible:    make(map[string][]model.Instructor),
	}

	for _, subject := range catalog.Subjects {
		normalized := normalizeSubject(subject)
		view.subjects[normalized.ID] = normalized
		view.subjectList = append(view.subjectList, normalized)
	}
	for _, instructor := range catalog.Instructors {
		view.instructors[instructor.ID] = instructor
		for _, subjectID := range instructor.EligibleSubjectIDs {
			view.eligible[subjectID] = append(view.eligible[subjectID], instructor)
		}
	}
	for _, cohort := range catalog.Cohorts {
		view.cohorts[cohort.ID] = cohort
	}

	return view, nil
}

// normalizeSubject fills the derived id and repairs degenerate lab
// declarations: a one-period "lab" contradicts the lab contract, so it
// becomes a single block of max(2, weekly) adjacent periods.
func normalizeSubject(subject model.Subject) model.Subject {
	if subject.ID == "" {
		subject.ID = model.DeriveSubjectID(subject.Code, subject.Kind)
	}
	if subject.SessionsPerWeek < 1 {
		subject.SessionsPerWeek = 1
	}
	if subject.ContinuousPeriods < 1 {
		subject.ContinuousPeriods = 1
	}
	if subject.Kind == model.Lab && subject.ContinuousPeriods < 2 {
		subject.ContinuousPeriods = max(2, subject.WeeklyPeriods)
		subject.SessionsPerWeek = 1
	}
	return subject
}

// cohortSubjects resolves a cohort's curriculum: its mandatory list, or
// the whole subject catalog when the list is empty.
func (view *catalogView) cohortSubjects(cohort model.Cohort) []model.Subject {
	if len(cohort.MandatorySubjectIDs) == 0 {
		return view.subjectList
	}
	return lo.FilterMap(cohort.MandatorySubjectIDs, func(id string, _ int) (model.Subject, bool) {
		subject, ok := view.subjects[id]
		return subject, ok
	})
}

// requiredSessions sums sessions-per-week over a cohort's curriculum.
func (view *catalogView) requiredSessions(cohort model.Cohort) int {
	return lo.SumBy(view.cohortSubjects(cohort), func(subject model.Subject) int {
		return subject.SessionsPerWeek
	})
}

// labGeometry derives the preferred-start spacing for one run from the
// number of distinct lab subjects across the scheduled cohorts and the
// longest lab block, and returns it with the last viable start period.
func (view *catalogView) labGeometry(cohortIDs []string) (spacing, lastViable int) {
	labIDs := map[string]bool{}
	maxLength := 2
	for _, cohortID := range cohortIDs {
		cohort := view.cohorts[cohortID]
		for _, subject := range view.cohortSubjects(cohort) {
			if subject.Kind != model.Lab {
				continue
			}
			labIDs[subject.ID] = true
			if subject.ContinuousPeriods > maxLength {
				maxLength = subject.ContinuousPeriods
			}
		}
	}

	available := view.grid.PeriodsPerDay() - maxLength + 1
	if available < 1 {
		available = 1
	}
	lastViable = available

	count := len(labIDs)
	if count == 0 {
		count = 1
	}
	spacing = available / count
	if spacing < 1 {
		spacing = 1
	}
	return spacing, lastViable
}
