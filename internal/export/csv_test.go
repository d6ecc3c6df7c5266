package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

func exportCatalog() model.Catalog {
	return model.Catalog{
		Institution: model.Institution{
			WorkingDays: []string{"Monday", "Tuesday"},
			Periods: []model.PeriodTiming{
				{Number: 1, Start: "09:00", End: "10:00"},
				{Number: 2, Start: "10:00", End: "11:00"},
			},
		},
		Subjects: []model.Subject{
			{ID: "S1", Code: "CS101", Name: "Programming", Kind: model.Theory, WeeklyPeriods: 2, SessionsPerWeek: 2, ContinuousPeriods: 1},
		},
		Instructors: []model.Instructor{
			{ID: "I1", Name: "Ada Lovelace", EligibleSubjectIDs: []string{"S1"}},
		},
		Rooms: []model.Room{
			{ID: "R1", Name: "Main Hall", Kind: model.Classroom, Capacity: 60},
		},
		Cohorts: []model.Cohort{
			{ID: "C1", Name: "CS 2A", Size: 40},
		},
	}
}

func exportTimetable() model.Timetable {
	slotAt := func(day int, dayName string, period, start int) timegrid.Slot {
		return timegrid.Slot{Day: day, DayName: dayName, Period: period, Start: start, End: start + 60}
	}
	return model.Timetable{
		ID:        "tt1",
		CohortIDs: []string{"C1"},
		Entries: []model.Entry{
			{ID: "e2", SubjectID: "S1", InstructorID: "I1", RoomID: "R1", CohortID: "C1", Slot: slotAt(1, "Tuesday", 1, 540)},
			{ID: "e1", SubjectID: "S1", InstructorID: "I1", RoomID: "R1", CohortID: "C1", Slot: slotAt(0, "Monday", 2, 600)},
		},
		Score:  100,
		Status: model.Draft,
	}
}

func TestWriteCSV(t *testing.T) {
	catalog := exportCatalog()
	var out bytes.Buffer

	err := WriteCSV(&out, &catalog, []model.Timetable{exportTimetable()})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cohort,day,period,start,end,subject,kind,instructor,room", lines[0])
	// Rows come out sorted by day then period, with names resolved.
	assert.Equal(t, "C1,Monday,2,10:00,11:00,Programming,theory,Ada Lovelace,Main Hall", lines[1])
	assert.Equal(t, "C1,Tuesday,1,09:00,10:00,Programming,theory,Ada Lovelace,Main Hall", lines[2])
}

func TestWriteXLSX(t *testing.T) {
	catalog := exportCatalog()
	path := t.TempDir() + "/out.xlsx"

	err := WriteXLSX(path, &catalog, []model.Timetable{exportTimetable()})

	require.NoError(t, err)
	assert.FileExists(t, path)
}
