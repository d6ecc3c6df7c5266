package engine

import (
	"github.com/google/uuid"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// Relaxation floors for instructor load bounds. Aggressive user-supplied
// bounds can make a week infeasible; the engine prefers a full schedule
// with soft-limit violations over a sparse one.
const (
	dailyPeriodFloor  = 6
	weeklyPeriodFloor = 30
)

type slotKey struct {
	day    int
	period int
}

func keyOf(slot timegrid.Slot) slotKey {
	return slotKey{day: slot.Day, period: slot.Period}
}

// displacedSession is a session evicted by a lab block, waiting in the
// reschedule queue.
type displacedSession struct {
	cohortID     string
	subjectID    string
	instructorID string
	length       int
}

// run is the mutable state of one placement attempt. The entries vector
// is the single mutable artifact; every auxiliary index derives from it.
type run struct {
	view     *catalogView
	rng      *lcg
	opts     runOptions
	settings model.OptimizationSettings
	multi    bool

	entries   []model.Entry
	conflicts map[string][]model.Conflict

	// Entries of committed timetables of disjoint cohorts; they
	// pre-occupy instructors and rooms for the whole run.
	blocking []model.Entry

	instructorAt map[string]map[slotKey]bool

	instructorDaily  map[string]map[int]int
	instructorWeekly map[string]int
	cohortDaily      map[string]map[int]int

	subjectDaySessions map[string]map[int]int // cohort|subject -> day -> sessions
	subjectPeriodDay   map[string]map[int]int // cohort|subject -> period -> day
	labBlocks          map[string]map[int]int // cohort -> day -> lab blocks
	sessions           map[string]int         // cohort -> placed sessions

	queue []displacedSession

	labStarts  map[string]int // lab subject id -> preferred start period
	labCursor  int
	labSpacing int
	labLast    int

	iterations int
}

func newRun(view *catalogView, rng *lcg, settings model.OptimizationSettings, cohortIDs []string, blocking []model.Entry, multi bool) *run {
	attempt := &run{
		view:     view,
		rng:      rng,
		opts:     drawRunOptions(rng),
		settings: settings,
		multi:    multi,

		entries:   []model.Entry{},
		conflicts: map[string][]model.Conflict{},
		blocking:  blocking,

		instructorAt: map[string]map[slotKey]bool{},

		instructorDaily:  map[string]map[int]int{},
		instructorWeekly: map[string]int{},
		cohortDaily:      map[string]map[int]int{},

		subjectDaySessions: map[string]map[int]int{},
		subjectPeriodDay:   map[string]map[int]int{},
		labBlocks:          map[string]map[int]int{},
		sessions:           map[string]int{},

		labStarts: map[string]int{},
	}

	attempt.labSpacing, attempt.labLast = view.labGeometry(cohortIDs)
	attempt.labCursor = attempt.opts.startPeriodOffset
	if attempt.labCursor > attempt.labLast {
		attempt.labCursor = 1
	}

	return attempt
}

func mark(index map[string]map[slotKey]bool, id string, key slotKey) {
	cells, ok := index[id]
	if !ok {
		cells = map[slotKey]bool{}
		index[id] = cells
	}
	cells[key] = true
}

func unmark(index map[string]map[slotKey]bool, id string, key slotKey) {
	delete(index[id], key)
}

func bump(index map[string]map[int]int, id string, day, delta int) {
	days, ok := index[id]
	if !ok {
		days = map[int]int{}
		index[id] = days
	}
	days[day] += delta
	if days[day] <= 0 {
		delete(days, day)
	}
}

func cohortSubjectKey(cohortID, subjectID string) string {
	return cohortID + "|" + subjectID
}

// exhausted reports whether the advisory per-attempt iteration budget has
// been spent. Zero means unbounded.
func (attempt *run) exhausted() bool {
	return attempt.settings.MaxIterations > 0 && attempt.iterations >= attempt.settings.MaxIterations
}

func (attempt *run) conflict(cohortID string, conflict model.Conflict) {
	attempt.conflicts[cohortID] = append(attempt.conflicts[cohortID], conflict)
}

// checkEntry gates a candidate entry with the hard-constraint checker:
// once against the given already-placed entries and once against the
// committed entries of disjoint cohorts. Committed timetables only
// pre-occupy instructors and rooms, so their capacity verdict (a
// duplicate of the first call's) is dropped.
func (attempt *run) checkEntry(entry model.Entry, existing []model.Entry) []model.Conflict {
	conflicts := CheckHardConstraints(attempt.view.catalog, entry, existing)
	for _, conflict := range CheckHardConstraints(attempt.view.catalog, entry, attempt.blocking) {
		if conflict.Kind != model.CapacityShortfall {
			conflicts = append(conflicts, conflict)
		}
	}
	return conflicts
}

// entriesExcluding returns the placed entries minus the given sessions.
func (attempt *run) entriesExcluding(sessions map[string]bool) []model.Entry {
	if len(sessions) == 0 {
		return attempt.entries
	}
	remaining := make([]model.Entry, 0, len(attempt.entries))
	for _, entry := range attempt.entries {
		if !sessions[entry.SessionID] {
			remaining = append(remaining, entry)
		}
	}
	return remaining
}

// roomFits reports whether any room can seat the cohort at all.
func (attempt *run) roomFits(cohort model.Cohort) bool {
	for _, room := range attempt.view.rooms {
		if room.Capacity >= cohort.Size {
			return true
		}
	}
	return false
}

// withinBudget checks the relaxed instructor load bounds and the cohort
// daily ceiling for a block of the given length.
func (attempt *run) withinBudget(instructor model.Instructor, cohort model.Cohort, day, length int) bool {
	dailyBound := max(instructor.MaxDailyPeriods, dailyPeriodFloor)
	weeklyBound := max(instructor.MaxWeeklyPeriods, weeklyPeriodFloor)
	if attempt.instructorDaily[instructor.ID][day]+length > dailyBound {
		return false
	}
	if attempt.instructorWeekly[instructor.ID]+length > weeklyBound {
		return false
	}
	if cohort.MaxDailyPeriods > 0 && attempt.cohortDaily[cohort.ID][day]+length > cohort.MaxDailyPeriods {
		return false
	}
	return true
}

// makeSession builds the candidate entries of one session so they can be
// gated by the checker before anything is committed.
func (attempt *run) makeSession(subject model.Subject, cohortID, instructorID, roomID string, slots []timegrid.Slot) []model.Entry {
	sessionID := uuid.NewString()
	entries := make([]model.Entry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, model.Entry{
			ID:           uuid.NewString(),
			SessionID:    sessionID,
			SubjectID:    subject.ID,
			InstructorID: instructorID,
			RoomID:       roomID,
			CohortID:     cohortID,
			Slot:         slot,
		})
	}
	return entries
}

// commitSession places checker-approved session entries and updates every
// derived index.
func (attempt *run) commitSession(subject model.Subject, entries []model.Entry) {
	for _, entry := range entries {
		attempt.entries = append(attempt.entries, entry)

		mark(attempt.instructorAt, entry.InstructorID, keyOf(entry.Slot))
		bump(attempt.instructorDaily, entry.InstructorID, entry.Slot.Day, 1)
		attempt.instructorWeekly[entry.InstructorID]++
		bump(attempt.cohortDaily, entry.CohortID, entry.Slot.Day, 1)
	}

	first := entries[0]
	day := first.Slot.Day
	subjectKey := cohortSubjectKey(first.CohortID, subject.ID)
	bump(attempt.subjectDaySessions, subjectKey, day, 1)
	periods, ok := attempt.subjectPeriodDay[subjectKey]
	if !ok {
		periods = map[int]int{}
		attempt.subjectPeriodDay[subjectKey] = periods
	}
	for _, entry := range entries {
		periods[entry.Slot.Period] = day
	}
	if subject.Kind == model.Lab {
		bump(attempt.labBlocks, first.CohortID, day, 1)
	}
	attempt.sessions[first.CohortID]++
}

// removeSession evicts every entry of a session, unwinding the indexes,
// and returns its descriptor for the reschedule queue.
func (attempt *run) removeSession(sessionID string) (displacedSession, bool) {
	kept := attempt.entries[:0]
	removed := []model.Entry{}
	for _, entry := range attempt.entries {
		if entry.SessionID == sessionID {
			removed = append(removed, entry)
		} else {
			kept = append(kept, entry)
		}
	}
	attempt.entries = kept
	if len(removed) == 0 {
		return displacedSession{}, false
	}

	first := removed[0]
	subject := attempt.view.subjects[first.SubjectID]
	subjectKey := cohortSubjectKey(first.CohortID, first.SubjectID)
	day := first.Slot.Day

	for _, entry := range removed {
		unmark(attempt.instructorAt, entry.InstructorID, keyOf(entry.Slot))
		bump(attempt.instructorDaily, entry.InstructorID, entry.Slot.Day, -1)
		attempt.instructorWeekly[entry.InstructorID]--
		bump(attempt.cohortDaily, entry.CohortID, entry.Slot.Day, -1)
		if periods, ok := attempt.subjectPeriodDay[subjectKey]; ok {
			if usedOn, used := periods[entry.Slot.Period]; used && usedOn == entry.Slot.Day {
				delete(periods, entry.Slot.Period)
			}
		}
	}

	bump(attempt.subjectDaySessions, subjectKey, day, -1)
	if subject.Kind == model.Lab {
		bump(attempt.labBlocks, first.CohortID, day, -1)
	}
	attempt.sessions[first.CohortID]--

	return displacedSession{
		cohortID:     first.CohortID,
		subjectID:    first.SubjectID,
		instructorID: first.InstructorID,
		length:       len(removed),
	}, true
}

// sessionsAt returns the distinct session ids colliding with the slot for
// the given instructor, room or cohort.
func (attempt *run) sessionsAt(instructorID, roomID, cohortID string, key slotKey) []string {
	ids := []string{}
	seen := map[string]bool{}
	for _, entry := range attempt.entries {
		if keyOf(entry.Slot) != key {
			continue
		}
		if entry.InstructorID != instructorID && entry.RoomID != roomID && entry.CohortID != cohortID {
			continue
		}
		if !seen[entry.SessionID] {
			seen[entry.SessionID] = true
			ids = append(ids, entry.SessionID)
		}
	}
	return ids
}

// sessionKind returns the subject kind behind a session id.
func (attempt *run) sessionKind(sessionID string) model.SubjectKind {
	for _, entry := range attempt.entries {
		if entry.SessionID == sessionID {
			return attempt.view.subjects[entry.SubjectID].Kind
		}
	}
	return model.Theory
}

// periodClashesAcrossDays reports whether placing the subject over the
// given periods on day would repeat a period number already used by the
// same subject on another day.
func (attempt *run) periodClashesAcrossDays(cohortID, subjectID string, day int, periods []int) bool {
	used := attempt.subjectPeriodDay[cohortSubjectKey(cohortID, subjectID)]
	for _, period := range periods {
		if usedOn, ok := used[period]; ok && usedOn != day {
			return true
		}
	}
	return false
}

// adjacentSameSubject reports whether the cohort already holds a session
// of the subject in a neighboring period on the same day.
func (attempt *run) adjacentSameSubject(cohortID, subjectID string, day, period int) bool {
	for _, entry := range attempt.entries {
		if entry.CohortID != cohortID || entry.SubjectID != subjectID || entry.Slot.Day != day {
			continue
		}
		if entry.Slot.Period == period-1 || entry.Slot.Period == period+1 {
			return true
		}
	}
	return false
}

// instructorAdjacent reports whether the instructor already teaches in a
// neighboring period on the same day. Used to honor avoid-back-to-back
// preferences in slot ordering, never as a hard reject.
func (attempt *run) instructorAdjacent(instructorID string, day, period int) bool {
	cells := attempt.instructorAt[instructorID]
	return cells[slotKey{day: day, period: period - 1}] || cells[slotKey{day: day, period: period + 1}]
}
