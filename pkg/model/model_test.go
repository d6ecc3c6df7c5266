package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCatalog() Catalog {
	return Catalog{
		Institution: Institution{
			Name:        "Test College",
			WorkingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			Periods: []PeriodTiming{
				{Number: 1, Start: "09:00", End: "10:00"},
				{Number: 2, Start: "10:00", End: "11:00"},
				{Number: 3, Start: "11:20", End: "12:20"},
			},
			Breaks: []BreakTiming{{Name: "break", Start: "11:00", End: "11:20"}},
		},
		Subjects: []Subject{
			{ID: "CS101", Code: "CS101", Name: "Programming", Kind: Theory, Credits: 4, WeeklyPeriods: 3, SessionsPerWeek: 3, ContinuousPeriods: 1},
		},
		Instructors: []Instructor{
			{ID: "I1", Name: "Ada", EligibleSubjectIDs: []string{"CS101"}, MaxWeeklyPeriods: 20, MaxDailyPeriods: 6},
		},
		Rooms: []Room{
			{ID: "R1", Name: "Room 1", Kind: Classroom, Capacity: 60},
		},
		Cohorts: []Cohort{
			{ID: "CS-2A", Name: "CS 2A", Department: "CS", Year: 2, Section: "A", Size: 40, MandatorySubjectIDs: []string{"CS101"}},
		},
	}
}

func TestDeriveSubjectID(t *testing.T) {
	assert.Equal(t, "CS101", DeriveSubjectID("CS101", Theory))
	assert.Equal(t, "CS101-lab", DeriveSubjectID("CS101", Lab))
	assert.Equal(t, "CS101-tutorial", DeriveSubjectID(" CS101 ", Tutorial))
}

func TestCatalogValidate(t *testing.T) {
	t.Run("valid catalog passes", func(t *testing.T) {
		catalog := validCatalog()
		assert.Nil(t, catalog.Validate())
	})

	t.Run("dangling instructor subject fails", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Instructors[0].EligibleSubjectIDs = []string{"MISSING"}
		assert.Error(t, catalog.Validate())
	})

	t.Run("dangling cohort subject fails", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Cohorts[0].MandatorySubjectIDs = []string{"MISSING"}
		assert.Error(t, catalog.Validate())
	})

	t.Run("duplicate room id fails", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Rooms = append(catalog.Rooms, catalog.Rooms[0])
		assert.Error(t, catalog.Validate())
	})

	t.Run("continuous beyond weekly fails", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Subjects[0].ContinuousPeriods = 5
		assert.Error(t, catalog.Validate())
	})

	t.Run("empty subjects fail", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Subjects = nil
		assert.Error(t, catalog.Validate())
	})

	t.Run("bad period clock fails", func(t *testing.T) {
		catalog := validCatalog()
		catalog.Institution.Periods[0].Start = "9am"
		assert.Error(t, catalog.Validate())
	})
}

func TestTimeTagMatches(t *testing.T) {
	t.Run("buckets", func(t *testing.T) {
		assert.True(t, Morning.Matches("Monday", 1, 9*60))
		assert.False(t, Morning.Matches("Monday", 5, 13*60))
		assert.True(t, Afternoon.Matches("Monday", 5, 13*60))
		assert.True(t, Evening.Matches("Friday", 8, 17*60))
		assert.False(t, Evening.Matches("Friday", 5, 16*60+59))
	})

	t.Run("day qualified", func(t *testing.T) {
		assert.True(t, TimeTag("monday:morning").Matches("Monday", 2, 10*60))
		assert.False(t, TimeTag("tuesday:morning").Matches("Monday", 2, 10*60))
		assert.True(t, TimeTag("friday").Matches("Friday", 2, 10*60))
	})

	t.Run("period qualified", func(t *testing.T) {
		assert.True(t, TimeTag("p3").Matches("Monday", 3, 11*60))
		assert.False(t, TimeTag("p3").Matches("Monday", 4, 11*60))
		assert.True(t, TimeTag("monday:p3").Matches("Monday", 3, 11*60))
		assert.False(t, TimeTag("tuesday:p3").Matches("Monday", 3, 11*60))
	})

	t.Run("unknown tokens never match", func(t *testing.T) {
		assert.False(t, TimeTag("").Matches("Monday", 1, 540))
		assert.False(t, TimeTag("noon").Matches("Monday", 1, 720))
	})
}

func TestTimetableLifecycle(t *testing.T) {
	timetable := Timetable{Status: Draft}

	require.NoError(t, timetable.Approve())
	assert.Equal(t, Approved, timetable.Status)

	require.NoError(t, timetable.Publish())
	assert.Equal(t, Published, timetable.Status)

	assert.Error(t, timetable.Approve())
	assert.Error(t, timetable.Publish())
}

func TestBlockingEntries(t *testing.T) {
	entryFor := func(cohortID string) Entry {
		return Entry{ID: cohortID + "-e", CohortID: cohortID}
	}
	registry := CommittedRegistry{Timetables: []Timetable{
		{CohortIDs: []string{"C1"}, Entries: []Entry{entryFor("C1")}},
		{CohortIDs: []string{"C2"}, Entries: []Entry{entryFor("C2")}},
		{CohortIDs: []string{"C3", "C4"}, Entries: []Entry{entryFor("C3"), entryFor("C4")}},
	}}

	t.Run("disjoint timetables block", func(t *testing.T) {
		blocking := registry.BlockingEntries([]string{"C2"})
		assert.Len(t, blocking, 3)
		for _, entry := range blocking {
			assert.NotEqual(t, "C2", entry.CohortID)
		}
	})

	t.Run("intersecting timetables are ignored", func(t *testing.T) {
		blocking := registry.BlockingEntries([]string{"C1", "C3"})
		assert.Len(t, blocking, 1)
		assert.Equal(t, "C2", blocking[0].CohortID)
	})

	t.Run("registry of only same-cohort timetables blocks nothing", func(t *testing.T) {
		assert.Empty(t, registry.BlockingEntries([]string{"C1", "C2", "C3", "C4"}))
	})
}

func TestSettingsFingerprint(t *testing.T) {
	base := OptimizationSettings{
		MaxIterations:   100,
		AvoidedPatterns: []SlotPattern{{Day: 1, Period: 2}, {Day: 0, Period: 3}},
	}

	t.Run("deterministic and order independent", func(t *testing.T) {
		flipped := base
		flipped.AvoidedPatterns = []SlotPattern{{Day: 0, Period: 3}, {Day: 1, Period: 2}}
		assert.Equal(t, base.Fingerprint(), flipped.Fingerprint())
	})

	t.Run("sensitive to settings changes", func(t *testing.T) {
		changed := base
		changed.MaxIterations = 101
		assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())
	})
}

func TestDecodeCatalog(t *testing.T) {
	raw := []byte(`{
		"institution": {
			"name": "Test College",
			"workingDays": ["Monday", "Tuesday"],
			"periods": [
				{"number": 1, "start": "09:00", "end": "10:00"},
				{"number": 2, "start": "10:00", "end": "11:00"}
			]
		},
		"subjects": [
			{"code": "PH202", "name": "Physics Lab", "kind": "lab", "weeklyPeriods": 2, "sessionsPerWeek": 1, "continuousPeriods": 2}
		],
		"instructors": [
			{"id": "I1", "name": "Ada", "eligibleSubjectIds": ["PH202-lab"], "maxWeeklyPeriods": 10, "maxDailyPeriods": 4}
		],
		"rooms": [{"id": "R1", "name": "Lab 1", "kind": "lab", "capacity": 30}],
		"cohorts": [{"id": "C1", "name": "C 1", "size": 25}]
	}`)

	catalog, err := DecodeCatalog(raw)

	require.NoError(t, err)
	assert.Equal(t, "PH202-lab", catalog.Subjects[0].ID)
	assert.Equal(t, Lab, catalog.Subjects[0].Kind)
	assert.Nil(t, catalog.Validate())
	assert.Len(t, catalog.Institution.Periods, 2)
}
