package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

// WriteXLSX renders the timetables as a workbook: one sheet per cohort,
// days across the columns, periods down the rows.
func WriteXLSX(path string, catalog *model.Catalog, timetables []model.Timetable) error {
	grid, err := catalog.Institution.Grid()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	for index, timetable := range timetables {
		sheet := sheetName(timetable)
		if index == 0 {
			if err := workbook.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		} else if _, err := workbook.NewSheet(sheet); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if err := fillSheet(workbook, sheet, grid, catalog, timetable); err != nil {
			return err
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func sheetName(timetable model.Timetable) string {
	if len(timetable.CohortIDs) > 0 {
		return timetable.CohortIDs[0]
	}
	return timetable.ID
}

func fillSheet(workbook *excelize.File, sheet string, grid *timegrid.Grid, catalog *model.Catalog, timetable model.Timetable) error {
	set := func(column, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(column, row)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := workbook.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}

	if err := set(1, 1, "Period"); err != nil {
		return err
	}
	for day, name := range grid.Days() {
		if err := set(day+2, 1, name); err != nil {
			return err
		}
	}
	for period := 1; period <= grid.PeriodsPerDay(); period++ {
		timing, _ := grid.Period(period)
		label := fmt.Sprintf("P%v (%v-%v)", period, timegrid.FormatClock(timing.Start), timegrid.FormatClock(timing.End))
		if err := set(1, period+1, label); err != nil {
			return err
		}
	}

	for _, entry := range timetable.Entries {
		label := entry.SubjectID
		if subject, ok := catalog.Subject(entry.SubjectID); ok {
			label = subject.Code
		}
		if instructor, ok := catalog.Instructor(entry.InstructorID); ok {
			label += "\n" + instructor.Name
		}
		if room, ok := catalog.Room(entry.RoomID); ok {
			label += "\n" + room.Name
		}
		if err := set(entry.Slot.Day+2, entry.Slot.Period+1, label); err != nil {
			return err
		}
	}
	return nil
}
