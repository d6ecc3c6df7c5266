// Package model holds the value types the timetable engine operates on:
// the input catalogs (institution calendar, subjects, instructors, rooms,
// cohorts) and the output artifacts (entries, timetables, conflicts).
package model

import (
	"fmt"
	"strings"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// SubjectKind is the closed set of session kinds a subject can carry.
type SubjectKind string

const (
	Theory   SubjectKind = "theory"
	Lab      SubjectKind = "lab"
	Tutorial SubjectKind = "tutorial"
	Seminar  SubjectKind = "seminar"
)

// RoomKind is the closed set of room categories.
type RoomKind string

const (
	Classroom   RoomKind = "classroom"
	LabRoom     RoomKind = "lab"
	SeminarHall RoomKind = "seminar_hall"
	Auditorium  RoomKind = "auditorium"
)

// Subject is one teachable unit of a curriculum.
//
// WeeklyPeriods is the total number of periods the subject occupies per
// week, SessionsPerWeek the number of distinct scheduled occurrences and
// ContinuousPeriods the length of each occurrence's consecutive run.
type Subject struct {
	ID                string      `mapstructure:"id"`
	Code              string      `mapstructure:"code" validate:"required"`
	Name              string      `mapstructure:"name" validate:"required"`
	Kind              SubjectKind `mapstructure:"kind" validate:"required,oneof=theory lab tutorial seminar"`
	Credits           int         `mapstructure:"credits" validate:"gte=0"`
	WeeklyPeriods     int         `mapstructure:"weeklyPeriods" validate:"gte=1"`
	SessionsPerWeek   int         `mapstructure:"sessionsPerWeek" validate:"gte=1"`
	ContinuousPeriods int         `mapstructure:"continuousPeriods" validate:"gte=1"`
	PreferredTimes    []TimeTag   `mapstructure:"preferredTimes"`
	RequiredEquipment []string    `mapstructure:"requiredEquipment"`
}

// DeriveSubjectID returns the stable id for a subject code and kind: the
// code itself for theory, the code suffixed with the kind otherwise.
func DeriveSubjectID(code string, kind SubjectKind) string {
	code = strings.TrimSpace(code)
	if kind == Theory || kind == "" {
		return code
	}
	return fmt.Sprintf("%v-%v", code, kind)
}

// Instructor is a teacher with eligibility and load limits. LeaveRate is
// advisory: it is carried with the catalog, and neither the engine nor
// the exporters read it.
type Instructor struct {
	ID                 string    `mapstructure:"id" validate:"required"`
	Name               string    `mapstructure:"name" validate:"required"`
	EligibleSubjectIDs []string  `mapstructure:"eligibleSubjectIds" validate:"min=1"`
	MaxWeeklyPeriods   int       `mapstructure:"maxWeeklyPeriods" validate:"gte=0"`
	MaxDailyPeriods    int       `mapstructure:"maxDailyPeriods" validate:"gte=0"`
	PreferredDays      []string  `mapstructure:"preferredDays"`
	PreferredTimes     []TimeTag `mapstructure:"preferredTimes"`
	AvoidBackToBack    bool      `mapstructure:"avoidBackToBack"`
	LeaveRate          float64   `mapstructure:"leaveRate" validate:"gte=0,lte=1"`
	PreferredRoomIDs   []string  `mapstructure:"preferredRoomIds"`
}

// Room is a physical teaching space.
type Room struct {
	ID        string   `mapstructure:"id" validate:"required"`
	Name      string   `mapstructure:"name" validate:"required"`
	Kind      RoomKind `mapstructure:"kind" validate:"required,oneof=classroom lab seminar_hall auditorium"`
	Capacity  int      `mapstructure:"capacity" validate:"gte=1"`
	Equipment []string `mapstructure:"equipment"`
	Location  string   `mapstructure:"location"`
}

// HasEquipment reports whether the room carries every required tag.
func (room Room) HasEquipment(required []string) bool {
	for _, tag := range required {
		found := false
		for _, owned := range room.Equipment {
			if strings.EqualFold(owned, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Cohort is a fixed group of students taking a common curriculum.
type Cohort struct {
	ID                  string   `mapstructure:"id" validate:"required"`
	Name                string   `mapstructure:"name" validate:"required"`
	Department          string   `mapstructure:"department"`
	Year                int      `mapstructure:"year" validate:"gte=0"`
	Section             string   `mapstructure:"section"`
	Size                int      `mapstructure:"size" validate:"gte=1"`
	MandatorySubjectIDs []string `mapstructure:"mandatorySubjectIds"`
	MaxDailyPeriods     int      `mapstructure:"maxDailyPeriods" validate:"gte=0"`
	SpecialRequirements []string `mapstructure:"specialRequirements"`
}

// PeriodTiming is one period of the institution's daily grid, with
// wall-clock start and end ("HH:MM").
type PeriodTiming struct {
	Number int    `mapstructure:"number" validate:"gte=1"`
	Start  string `mapstructure:"start" validate:"required"`
	End    string `mapstructure:"end" validate:"required"`
}

// BreakTiming is a scheduled no-teaching interval within the day.
type BreakTiming struct {
	Name  string `mapstructure:"name"`
	Start string `mapstructure:"start" validate:"required"`
	End   string `mapstructure:"end" validate:"required"`
}

// Institution is the calendar: ordered working days, the day's period
// timings in ascending period order, and explicit breaks.
type Institution struct {
	Name        string         `mapstructure:"name"`
	WorkingDays []string       `mapstructure:"workingDays" validate:"min=1"`
	Periods     []PeriodTiming `mapstructure:"periods" validate:"min=1,dive"`
	Breaks      []BreakTiming  `mapstructure:"breaks" validate:"dive"`
}

// Grid converts the calendar into the canonical time grid.
func (institution Institution) Grid() (*timegrid.Grid, error) {
	periods := make([]timegrid.Period, 0, len(institution.Periods))
	for _, timing := range institution.Periods {
		start, err := timegrid.ParseClock(timing.Start)
		if err != nil {
			return nil, fmt.Errorf("period %v: %w", timing.Number, err)
		}
		end, err := timegrid.ParseClock(timing.End)
		if err != nil {
			return nil, fmt.Errorf("period %v: %w", timing.Number, err)
		}
		periods = append(periods, timegrid.Period{Number: timing.Number, Start: start, End: end})
	}

	breaks := make([]timegrid.Break, 0, len(institution.Breaks))
	for _, timing := range institution.Breaks {
		start, err := timegrid.ParseClock(timing.Start)
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", timing.Name, err)
		}
		end, err := timegrid.ParseClock(timing.End)
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", timing.Name, err)
		}
		breaks = append(breaks, timegrid.Break{Name: timing.Name, Start: start, End: end})
	}

	return timegrid.New(institution.WorkingDays, periods, breaks)
}

// Catalog is the immutable input bundle for one engine run.
type Catalog struct {
	Institution Institution  `mapstructure:"institution"`
	Subjects    []Subject    `mapstructure:"subjects" validate:"min=1,dive"`
	Instructors []Instructor `mapstructure:"instructors" validate:"min=1,dive"`
	Rooms       []Room       `mapstructure:"rooms" validate:"min=1,dive"`
	Cohorts     []Cohort     `mapstructure:"cohorts" validate:"min=1,dive"`
}

// Subject returns the subject with the given id.
func (catalog *Catalog) Subject(id string) (Subject, bool) {
	for _, subject := range catalog.Subjects {
		if subject.ID == id {
			return subject, true
		}
	}
	return Subject{}, false
}

// Instructor returns the instructor with the given id.
func (catalog *Catalog) Instructor(id string) (Instructor, bool) {
	for _, instructor := range catalog.Instructors {
		if instructor.ID == id {
			return instructor, true
		}
	}
	return Instructor{}, false
}

// Room returns the room with the given id.
func (catalog *Catalog) Room(id string) (Room, bool) {
	for _, room := range catalog.Rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

// Cohort returns the cohort with the given id.
func (catalog *Catalog) Cohort(id string) (Cohort, bool) {
	for _, cohort := range catalog.Cohorts {
		if cohort.ID == id {
			return cohort, true
		}
	}
	return Cohort{}, false
}
