package engine

import (
	"fmt"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// drainQueue re-places the sessions displaced by lab blocks. The queue is
// drained exactly once, after primary placement, which bounds the churn:
// a session displaced here is never displaced again. Sessions that cannot
// be re-placed become high-severity conflicts.
func (attempt *run) drainQueue() {
	queue := attempt.queue
	attempt.queue = nil

	for _, evicted := range queue {
		subject, ok := attempt.view.subjects[evicted.subjectID]
		if !ok {
			continue
		}
		cohort := attempt.view.cohorts[evicted.cohortID]
		// Re-placement honors the session's original length even when the
		// catalog subject differs after normalization.
		subject.ContinuousPeriods = evicted.length

		if attempt.replaceSession(cohort, subject, evicted.instructorID) {
			continue
		}
		attempt.conflict(cohort.ID, model.Conflict{
			Kind:     model.ConstraintViolation,
			Severity: model.High,
			Description: fmt.Sprintf("session of %v displaced by a lab block could not be rescheduled for cohort %v",
				subject.ID, cohort.ID),
			Suggestions: []string{
				"add rooms or instructors to absorb the displaced session",
				"retry generation with a different seed",
			},
		})
	}
}

// replaceSession tries the original instructor first, then any other
// eligible instructor, at any still-available slot passing the hard
// checks and the theory adjacency rules.
func (attempt *run) replaceSession(cohort model.Cohort, subject model.Subject, instructorID string) bool {
	ordered := []model.Instructor{}
	if original, ok := attempt.view.instructors[instructorID]; ok {
		ordered = append(ordered, original)
	}
	for _, instructor := range attempt.candidateInstructors(subject) {
		if instructor.ID != instructorID {
			ordered = append(ordered, instructor)
		}
	}

	for _, instructor := range ordered {
		rooms := attempt.candidateRooms(subject, cohort, instructor)
		for _, candidate := range attempt.theoryCandidates(cohort, subject, instructor) {
			if placed, _ := attempt.tryTheorySession(cohort, subject, instructor, rooms, candidate); placed {
				return true
			}
		}
	}
	return false
}
