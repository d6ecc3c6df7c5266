package engine

import (
	"fmt"
	"sort"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// blockCandidate is one possible placement of a session: a day and a
// start period whose block passed the structural filters.
type blockCandidate struct {
	day       int
	start     int
	preferred bool
	adjacent  bool // instructor already teaches a neighboring period
}

// placeTheory schedules every session of a non-lab subject for a cohort.
// Sessions land on distinct days; each session occupies ContinuousPeriods
// adjacent periods placed atomically.
func (attempt *run) placeTheory(cohort model.Cohort, subject model.Subject) {
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

	instructors := attempt.candidateInstructors(subject)

	for session := 0; session < subject.SessionsPerWeek; session++ {
		placed, failure := attempt.placeTheorySession(cohort, subject, instructors)
		if placed {
			continue
		}
		for _, conflict := range failure {
			attempt.conflict(cohort.ID, conflict)
		}
		attempt.conflict(cohort.ID, model.Conflict{
			Kind:     model.ConstraintViolation,
			Severity: model.High,
			Description: fmt.Sprintf("could not place session %v/%v of %v for cohort %v",
				session+1, subject.SessionsPerWeek, subject.ID, cohort.ID),
			Suggestions: []string{
				"add another eligible instructor for the subject",
				"relax the subject's preferred times",
				"free up periods by moving other sessions",
			},
		})
	}
}

// placeTheorySession tries every instructor, slot and room for one
// session. On failure it returns the checker verdict of the first
// rejected candidate.
func (attempt *run) placeTheorySession(cohort model.Cohort, subject model.Subject, instructors []model.Instructor) (bool, []model.Conflict) {
	var firstFailure []model.Conflict
	for _, instructor := range instructors {
		rooms := attempt.candidateRooms(subject, cohort, instructor)
		for _, candidate := range attempt.theoryCandidates(cohort, subject, instructor) {
			if attempt.exhausted() {
				return false, firstFailure
			}
			placed, failure := attempt.tryTheorySession(cohort, subject, instructor, rooms, candidate)
			if placed {
				return true, nil
			}
			if firstFailure == nil && len(failure) > 0 {
				firstFailure = failure
			}
		}
	}
	return false, firstFailure
}

// theoryCandidates enumerates the feasible (day, start) blocks for one
// session, ordered by the run's preference options.
func (attempt *run) theoryCandidates(cohort model.Cohort, subject model.Subject, instructor model.Instructor) []blockCandidate {
	length := subject.ContinuousPeriods
	subjectKey := cohortSubjectKey(cohort.ID, subject.ID)
	candidates := []blockCandidate{}

	for _, day := range attempt.candidateDays() {
		// Candidate days are days not yet holding a session of this
		// subject for the cohort.
		if attempt.subjectDaySessions[subjectKey][day] > 0 {
			continue
		}
		dayName := attempt.view.grid.Days()[day]

		for _, periodRun := range attempt.view.grid.Runs() {
			for offset := 0; offset+length <= len(periodRun); offset++ {
				start := periodRun[offset]
				periods := blockPeriods(start, length)

				if !attempt.multi && attempt.anyAvoided(day, periods) {
					continue
				}
				if attempt.periodClashesAcrossDays(cohort.ID, subject.ID, day, periods) {
					continue
				}
				if length == 1 && attempt.adjacentSameSubject(cohort.ID, subject.ID, day, start) {
					continue
				}

				slot, ok := attempt.view.grid.SlotAt(day, start)
				if !ok {
					continue
				}
				candidates = append(candidates, blockCandidate{
					day:       day,
					start:     start,
					preferred: attempt.slotPreferred(subject, instructor, dayName, slot),
					adjacent: attempt.instructorAdjacent(instructor.ID, day, start) ||
						attempt.instructorAdjacent(instructor.ID, day, start+length-1),
				})
			}
		}
	}

	attempt.orderCandidates(candidates, instructor)
	return candidates
}

func (attempt *run) anyAvoided(day int, periods []int) bool {
	for _, period := range periods {
		if attempt.settings.Avoided(day, period) {
			return true
		}
	}
	return false
}

// slotPreferred matches the subject's and instructor's preferred-time
// tags (and the instructor's preferred days) against the slot.
func (attempt *run) slotPreferred(subject model.Subject, instructor model.Instructor, dayName string, slot timegrid.Slot) bool {
	if model.AnyTagMatches(subject.PreferredTimes, dayName, slot.Period, slot.Start) {
		return true
	}
	if model.AnyTagMatches(instructor.PreferredTimes, dayName, slot.Period, slot.Start) {
		return true
	}
	for _, preferredDay := range instructor.PreferredDays {
		if preferredDay == dayName {
			return true
		}
	}
	return false
}

// orderCandidates applies the run's seeded options: preferred slots come
// first (unless time flexibility disables the partition), earlier starts
// win when preferEarlier is set, randomizeSlots reshuffles within groups,
// and back-to-back-averse instructors see adjacent slots last.
func (attempt *run) orderCandidates(candidates []blockCandidate, instructor model.Instructor) {
	if attempt.opts.randomizeSlots || attempt.opts.timeFlexibility == 1 {
		reshuffled := shuffled(attempt.rng, candidates)
		copy(candidates, reshuffled)
	}
	if attempt.opts.preferEarlier {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].start < candidates[j].start
		})
	}
	if attempt.opts.timeFlexibility < 2 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].preferred && !candidates[j].preferred
		})
	}
	if instructor.AvoidBackToBack {
		sort.SliceStable(candidates, func(i, j int) bool {
			return !candidates[i].adjacent && candidates[j].adjacent
		})
	}
}

// tryTheorySession commits one session atomically: every period of the
// block must pass the hard-constraint checker against the placed entries
// and the committed registry, otherwise nothing is placed. On rejection
// it returns the first room's checker verdict.
func (attempt *run) tryTheorySession(cohort model.Cohort, subject model.Subject, instructor model.Instructor, rooms []model.Room, candidate blockCandidate) (bool, []model.Conflict) {
	length := subject.ContinuousPeriods

	if !attempt.withinBudget(instructor, cohort, candidate.day, length) {
		return false, nil
	}

	slots := make([]timegrid.Slot, 0, length)
	for period := candidate.start; period < candidate.start+length; period++ {
		slot, ok := attempt.view.grid.SlotAt(candidate.day, period)
		if !ok {
			return false, nil
		}
		slots = append(slots, slot)
	}

	var firstFailure []model.Conflict
	for _, room := range rooms {
		attempt.iterations++
		entries := attempt.makeSession(subject, cohort.ID, instructor.ID, room.ID, slots)

		var rejected []model.Conflict
		for _, entry := range entries {
			if conflicts := attempt.checkEntry(entry, attempt.entries); len(conflicts) > 0 {
				rejected = conflicts
				break
			}
		}
		if rejected != nil {
			if firstFailure == nil {
				firstFailure = rejected
			}
			continue
		}

		attempt.commitSession(subject, entries)
		return true, nil
	}
	return false, firstFailure
}
