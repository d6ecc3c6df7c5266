// Package export renders generated timetables to tabular documents.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// Row is one entry flattened for spreadsheet consumption.
type Row struct {
	Cohort     string `csv:"cohort"`
	Day        string `csv:"day"`
	Period     int    `csv:"period"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Subject    string `csv:"subject"`
	Kind       string `csv:"kind"`
	Instructor string `csv:"instructor"`
	Room       string `csv:"room"`
}

// WriteCSV renders the timetables as CSV rows sorted by cohort, day and
// period.
func WriteCSV(out io.Writer, catalog *model.Catalog, timetables []model.Timetable) error {
	entries := []model.Entry{}
	for _, timetable := range timetables {
		entries = append(entries, timetable.Entries...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CohortID != entries[j].CohortID {
			return entries[i].CohortID < entries[j].CohortID
		}
		if entries[i].Slot.Day != entries[j].Slot.Day {
			return entries[i].Slot.Day < entries[j].Slot.Day
		}
		return entries[i].Slot.Period < entries[j].Slot.Period
	})

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, rowOf(catalog, entry))
	}

	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func rowOf(catalog *model.Catalog, entry model.Entry) Row {
	subjectName := entry.SubjectID
	kind := ""
	if subject, ok := catalog.Subject(entry.SubjectID); ok {
		subjectName = subject.Name
		kind = string(subject.Kind)
	}
	instructorName := entry.InstructorID
	if instructor, ok := catalog.Instructor(entry.InstructorID); ok {
		instructorName = instructor.Name
	}
	roomName := entry.RoomID
	if room, ok := catalog.Room(entry.RoomID); ok {
		roomName = room.Name
	}

	return Row{
		Cohort:     entry.CohortID,
		Day:        entry.Slot.DayName,
		Period:     entry.Slot.Period,
		Start:      timegrid.FormatClock(entry.Slot.Start),
		End:        timegrid.FormatClock(entry.Slot.End),
		Subject:    subjectName,
		Kind:       kind,
		Instructor: instructorName,
		Room:       roomName,
	}
}
