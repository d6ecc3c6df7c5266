package engine

import (
	"fmt"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// placeLab schedules every block of a lab subject for one cohort. Each
// block is ContinuousPeriods adjacent periods on a single day, biased
// toward the subject's preferred start period so different labs spread
// across the day.
func (attempt *run) placeLab(cohort model.Cohort, subject model.Subject) {
	if !attempt.roomFits(cohort) {
		attempt.conflict(cohort.ID, model.Conflict{
			Kind:        model.CapacityShortfall,
			Severity:    model.High,
			Description: fmt.Sprintf("no room seats the %v students of cohort %v for %v", cohort.Size, cohort.ID, subject.ID),
			Suggestions: []string{
				"add a room with sufficient capacity",
				"split the cohort across parallel sessions",
			},
		})
		return
	}

	for session := 0; session < subject.SessionsPerWeek; session++ {
		placed, failure := attempt.placeLabBlock(cohort, subject)
		if placed {
			continue
		}
		for _, conflict := range failure {
			attempt.conflict(cohort.ID, conflict)
		}
		attempt.conflict(cohort.ID, model.Conflict{
			Kind:     model.ConstraintViolation,
			Severity: model.High,
			Description: fmt.Sprintf("could not place lab block %v/%v of %v for cohort %v",
				session+1, subject.SessionsPerWeek, subject.ID, cohort.ID),
			Suggestions: []string{
				"add a lab room with sufficient capacity",
				"widen instructor availability for the subject",
				"reduce the number of lab blocks on the busiest days",
			},
		})
	}
}

// preferredLabStart assigns (once per run) the start period a lab subject
// is biased toward, advancing a shared cursor by the run's spacing so
// distinct labs land at different times of day. The cursor wraps past the
// last viable start.
func (attempt *run) preferredLabStart(subjectID string) int {
	if start, ok := attempt.labStarts[subjectID]; ok {
		return start
	}
	start := attempt.labCursor
	attempt.labStarts[subjectID] = start
	attempt.labCursor += attempt.labSpacing
	if attempt.labCursor > attempt.labLast {
		attempt.labCursor = 1
	}
	return start
}

// startTolerance bounds how far a lab block may drift from its preferred
// start period.
func (attempt *run) startTolerance() int {
	return max(2, attempt.view.grid.PeriodsPerDay()/3)
}

// placeLabBlock searches days, runs, instructors and rooms for one block.
// On failure it returns the checker verdict of the first rejected
// candidate, so the caller can report why the preferred placement died.
func (attempt *run) placeLabBlock(cohort model.Cohort, subject model.Subject) (bool, []model.Conflict) {
	preferred := attempt.preferredLabStart(subject.ID)
	tolerance := attempt.startTolerance()
	length := subject.ContinuousPeriods
	subjectKey := cohortSubjectKey(cohort.ID, subject.ID)

	var firstFailure []model.Conflict
	for _, day := range attempt.candidateDays() {
		// One block of the same lab per day, at most two lab blocks per
		// cohort per day.
		if attempt.subjectDaySessions[subjectKey][day] > 0 {
			continue
		}
		if attempt.labBlocks[cohort.ID][day] >= 2 {
			continue
		}

		for _, periodRun := range attempt.view.grid.Runs() {
			for offset := 0; offset+length <= len(periodRun); offset++ {
				start := periodRun[offset]
				if abs(start-preferred) > tolerance {
					continue
				}
				if !attempt.view.grid.IsBlockFeasible(day, start, length) {
					continue
				}
				if attempt.periodClashesAcrossDays(cohort.ID, subject.ID, day, blockPeriods(start, length)) {
					continue
				}

				for _, instructor := range attempt.candidateInstructors(subject) {
					for _, room := range attempt.candidateRooms(subject, cohort, instructor) {
						if attempt.exhausted() {
							return false, firstFailure
						}
						placed, failure := attempt.tryLabBlock(cohort, subject, day, start, instructor, room)
						if placed {
							return true, nil
						}
						if firstFailure == nil && len(failure) > 0 {
							firstFailure = failure
						}
					}
				}
			}
		}
	}
	return false, firstFailure
}

// tryLabBlock validates a whole block up front, then commits it as one
// transactional unit: every period must pass the hard-constraint checker
// or nothing is placed. Collisions with other lab blocks reject the
// block; colliding theory sessions are displaced and queued for
// rescheduling, and the checker gates the block against everything that
// remains, including committed entries of disjoint cohorts.
func (attempt *run) tryLabBlock(cohort model.Cohort, subject model.Subject, day, start int, instructor model.Instructor, room model.Room) (bool, []model.Conflict) {
	attempt.iterations++
	length := subject.ContinuousPeriods

	slots := make([]timegrid.Slot, 0, length)
	displaceOrder := []string{}
	displaceSeen := map[string]bool{}

	for period := start; period < start+length; period++ {
		slot, ok := attempt.view.grid.SlotAt(day, period)
		if !ok {
			return false, nil
		}
		slots = append(slots, slot)

		for _, sessionID := range attempt.sessionsAt(instructor.ID, room.ID, cohort.ID, keyOf(slot)) {
			if attempt.sessionKind(sessionID) == model.Lab {
				return false, nil
			}
			if !displaceSeen[sessionID] {
				displaceSeen[sessionID] = true
				displaceOrder = append(displaceOrder, sessionID)
			}
		}
	}

	if !attempt.withinBudget(instructor, cohort, day, length) {
		return false, nil
	}

	// Gate the block with the checker against everything that would
	// survive the displacement.
	remaining := attempt.entriesExcluding(displaceSeen)
	entries := attempt.makeSession(subject, cohort.ID, instructor.ID, room.ID, slots)
	for _, entry := range entries {
		if conflicts := attempt.checkEntry(entry, remaining); len(conflicts) > 0 {
			return false, conflicts
		}
	}

	for _, sessionID := range displaceOrder {
		if evicted, ok := attempt.removeSession(sessionID); ok {
			attempt.queue = append(attempt.queue, evicted)
		}
	}
	attempt.commitSession(subject, entries)
	return true, nil
}

func blockPeriods(start, length int) []int {
	periods := make([]int, length)
	for i := range periods {
		periods[i] = start + i
	}
	return periods
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
