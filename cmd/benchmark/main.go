// Command benchmark measures generation time and schedule quality over
// synthetic catalogs of growing size, and writes the results as CSV.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/engine"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

const outFile = "benchmark.csv"

// CaseMetadata describes one synthetic benchmark catalog.
type CaseMetadata struct {
	Name        string
	Cohorts     int
	Subjects    int
	Instructors int
	Rooms       int
}

// BenchmarkResult is one measured generation run.
type BenchmarkResult struct {
	Case       CaseMetadata
	Seed       int64
	DurationMs int64
	Entries    int
	Conflicts  int
	MeanScore  int
}

func main() {
	scheduler := engine.New(nil)
	results := make([]BenchmarkResult, 0)

	for _, benchmarkCase := range getCases() {
		catalog := syntheticCatalog(benchmarkCase)
		cohortIDs := lo.Map(catalog.Cohorts, func(cohort model.Cohort, _ int) string {
			return cohort.ID
		})

		for seed := int64(1); seed <= 5; seed++ {
			started := time.Now()
			timetables, err := scheduler.GenerateMultiCohort(&catalog, cohortIDs, model.OptimizationSettings{Seed: seed}, model.CommittedRegistry{})
			if err != nil {
				log.Fatalf("generation failed for %v: %v", benchmarkCase.Name, err)
			}
			duration := time.Since(started).Milliseconds()

			entries := lo.SumBy(timetables, func(timetable model.Timetable) int { return len(timetable.Entries) })
			conflicts := lo.SumBy(timetables, func(timetable model.Timetable) int { return len(timetable.Conflicts) })
			meanScore := lo.SumBy(timetables, func(timetable model.Timetable) int { return timetable.Score }) / len(timetables)

			results = append(results, BenchmarkResult{
				Case:       benchmarkCase,
				Seed:       seed,
				DurationMs: duration,
				Entries:    entries,
				Conflicts:  conflicts,
				MeanScore:  meanScore,
			})
		}
	}

	toCsv(results)
}

func getCases() []CaseMetadata {
	return []CaseMetadata{
		{Name: "small", Cohorts: 2, Subjects: 4, Instructors: 4, Rooms: 4},
		{Name: "medium", Cohorts: 4, Subjects: 6, Instructors: 8, Rooms: 8},
		{Name: "large", Cohorts: 8, Subjects: 8, Instructors: 16, Rooms: 12},
	}
}

// syntheticCatalog builds a feasible catalog of the requested size: five
// eight-period days, one lab per four subjects, instructors spread evenly
// over the subject list.
func syntheticCatalog(benchmarkCase CaseMetadata) model.Catalog {
	institution := model.Institution{
		Name:        "Benchmark College",
		WorkingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Periods: []model.PeriodTiming{
			{Number: 1, Start: "09:00", End: "09:40"},
			{Number: 2, Start: "09:40", End: "10:20"},
			{Number: 3, Start: "10:20", End: "11:00"},
			{Number: 4, Start: "11:20", End: "12:00"},
			{Number: 5, Start: "12:00", End: "12:40"},
			{Number: 6, Start: "12:40", End: "13:20"},
			{Number: 7, Start: "13:20", End: "14:00"},
			{Number: 8, Start: "14:00", End: "14:40"},
		},
		Breaks: []model.BreakTiming{{Name: "lunch", Start: "11:00", End: "11:20"}},
	}

	subjects := make([]model.Subject, 0, benchmarkCase.Subjects)
	for i := 0; i < benchmarkCase.Subjects; i++ {
		code := fmt.Sprintf("SUB%v", i+1)
		if i%4 == 3 {
			subjects = append(subjects, model.Subject{
				ID: model.DeriveSubjectID(code, model.Lab), Code: code, Name: code + " Lab", Kind: model.Lab,
				WeeklyPeriods: 3, SessionsPerWeek: 1, ContinuousPeriods: 3,
			})
			continue
		}
		subjects = append(subjects, model.Subject{
			ID: code, Code: code, Name: code, Kind: model.Theory,
			WeeklyPeriods: 2, SessionsPerWeek: 2, ContinuousPeriods: 1,
		})
	}

	instructors := make([]model.Instructor, 0, benchmarkCase.Instructors)
	for i := 0; i < benchmarkCase.Instructors; i++ {
		// Each instructor covers two subjects, wrapping around the list.
		eligible := []string{
			subjects[i%len(subjects)].ID,
			subjects[(i+1)%len(subjects)].ID,
		}
		instructors = append(instructors, model.Instructor{
			ID: fmt.Sprintf("INS%v", i+1), Name: fmt.Sprintf("Instructor %v", i+1),
			EligibleSubjectIDs: lo.Uniq(eligible), MaxWeeklyPeriods: 24, MaxDailyPeriods: 6,
		})
	}

	rooms := make([]model.Room, 0, benchmarkCase.Rooms)
	for i := 0; i < benchmarkCase.Rooms; i++ {
		kind := model.Classroom
		if i%3 == 2 {
			kind = model.LabRoom
		}
		rooms = append(rooms, model.Room{
			ID: fmt.Sprintf("ROOM%v", i+1), Name: fmt.Sprintf("Room %v", i+1), Kind: kind, Capacity: 60,
		})
	}

	cohorts := make([]model.Cohort, 0, benchmarkCase.Cohorts)
	for i := 0; i < benchmarkCase.Cohorts; i++ {
		cohorts = append(cohorts, model.Cohort{
			ID: fmt.Sprintf("COH%v", i+1), Name: fmt.Sprintf("Cohort %v", i+1), Size: 40,
		})
	}

	return model.Catalog{
		Institution: institution,
		Subjects:    subjects,
		Instructors: instructors,
		Rooms:       rooms,
		Cohorts:     cohorts,
	}
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(outFile)
	if err != nil {
		log.Fatalf("cannot create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"case", "cohorts", "subjects", "instructors", "rooms", "seed", "duration_ms", "entries", "conflicts", "mean_score"}
	if err := writer.Write(header); err != nil {
		log.Fatalf("cannot write csv header: %v", err)
	}
	for _, result := range results {
		row := []string{
			result.Case.Name,
			fmt.Sprint(result.Case.Cohorts),
			fmt.Sprint(result.Case.Subjects),
			fmt.Sprint(result.Case.Instructors),
			fmt.Sprint(result.Case.Rooms),
			fmt.Sprint(result.Seed),
			fmt.Sprint(result.DurationMs),
			fmt.Sprint(result.Entries),
			fmt.Sprint(result.Conflicts),
			fmt.Sprint(result.MeanScore),
		}
		if err := writer.Write(row); err != nil {
			log.Fatalf("cannot write csv row: %v", err)
		}
	}
}
