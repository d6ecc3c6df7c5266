package model

import (
	"fmt"
	"time"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// Entry is one committed assignment of a subject, instructor, room and
// cohort to a concrete slot. Multi-period sessions are represented as one
// entry per period, all sharing the same SessionID.
type Entry struct {
	ID           string
	SessionID    string
	SubjectID    string
	InstructorID string
	RoomID       string
	CohortID     string
	Slot         timegrid.Slot
}

// ConflictKind classifies a hard-constraint violation.
type ConflictKind string

const (
	InstructorClash     ConflictKind = "instructor_clash"
	RoomClash           ConflictKind = "room_clash"
	CohortClash         ConflictKind = "cohort_clash"
	CapacityShortfall   ConflictKind = "capacity_shortfall"
	ConstraintViolation ConflictKind = "constraint_violation"
)

// Severity grades a conflict.
type Severity string

const (
	High   Severity = "high"
	Medium Severity = "medium"
	Low    Severity = "low"
)

// Conflict is a reported violation: what went wrong, which entries are
// involved and what a scheduler operator could do about it.
type Conflict struct {
	Kind        ConflictKind
	Severity    Severity
	Description string
	EntryIDs    []string
	Suggestions []string
}

// TimetableStatus is the lifecycle state of a generated timetable.
type TimetableStatus string

const (
	Draft     TimetableStatus = "draft"
	Approved  TimetableStatus = "approved"
	Published TimetableStatus = "published"
)

// Timetable is one generated weekly schedule. The engine always emits
// Draft timetables; the approval workflow lives outside the engine.
type Timetable struct {
	ID          string
	GeneratedAt time.Time
	CohortIDs   []string
	Entries     []Entry
	Conflicts   []Conflict
	Score       int
	Status      TimetableStatus
}

// Approve moves a draft to approved.
func (timetable *Timetable) Approve() error {
	if timetable.Status != Draft {
		return fmt.Errorf("cannot approve a %v timetable", timetable.Status)
	}
	timetable.Status = Approved
	return nil
}

// Publish moves an approved timetable to published.
func (timetable *Timetable) Publish() error {
	if timetable.Status != Approved {
		return fmt.Errorf("cannot publish a %v timetable", timetable.Status)
	}
	timetable.Status = Published
	return nil
}

// Covers reports whether the timetable was generated for the cohort.
func (timetable Timetable) Covers(cohortID string) bool {
	for _, id := range timetable.CohortIDs {
		if id == cohortID {
			return true
		}
	}
	return false
}

// CommittedRegistry is the set of previously saved timetables whose
// entries pre-occupy instructors and rooms during a new generation call.
type CommittedRegistry struct {
	Timetables []Timetable
}

// BlockingEntries returns the entries of every registry timetable whose
// cohort set is disjoint from the given cohort set. Timetables covering
// any of the cohorts being regenerated are ignored: their slots are about
// to be replaced.
func (registry CommittedRegistry) BlockingEntries(cohortIDs []string) []Entry {
	regenerating := make(map[string]bool, len(cohortIDs))
	for _, id := range cohortIDs {
		regenerating[id] = true
	}

	blocking := []Entry{}
	for _, timetable := range registry.Timetables {
		disjoint := true
		for _, id := range timetable.CohortIDs {
			if regenerating[id] {
				disjoint = false
				break
			}
		}
		if disjoint {
			blocking = append(blocking, timetable.Entries...)
		}
	}
	return blocking
}
