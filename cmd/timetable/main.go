// Command timetable generates weekly timetables for one or more cohorts
// from a JSON catalog, exports the result and records it in the
// committed-timetable registry so later multi-cohort runs avoid the
// occupied slots; single-cohort runs do not consult the registry.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/internal/config"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/internal/export"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/internal/storage"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/engine"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/logger"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/timegrid"
)

func main() {
	// Define arguments
	filePtr := flag.String("file", "", "Path to the catalog JSON file")
	cohortsPtr := flag.String("cohorts", "", "Comma-separated cohort ids to schedule")
	outPtr := flag.String("out", "", "Path for the JSON output; empty writes to the standard output")
	csvPtr := flag.String("csv", "", "Optional path for a CSV export")
	xlsxPtr := flag.String("xlsx", "", "Optional path for an XLSX export")
	configPtr := flag.String("config", "", "Optional path to a YAML config file")
	seedPtr := flag.Int64("seed", 0, "Seed for reproducible generation; 0 derives one")
	timeLimitPtr := flag.Int("time-limit", 0, "Advisory time limit in seconds for multi-cohort restarts")
	savePtr := flag.Bool("save", true, "Record the generated timetables in the registry")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zlog.Sync()

	// Validate arguments
	if *filePtr == "" {
		log.Fatal("a catalog file must be specified")
	}
	cohortIDs := lo.Filter(strings.Split(*cohortsPtr, ","), func(id string, _ int) bool {
		return strings.TrimSpace(id) != ""
	})
	cohortIDs = lo.Map(cohortIDs, func(id string, _ int) string { return strings.TrimSpace(id) })
	if len(cohortIDs) == 0 {
		log.Fatal("at least one cohort id must be specified")
	}

	// Extract and validate the catalog
	catalog, err := model.CatalogFromJSON(*filePtr)
	if err != nil {
		log.Fatalf("cannot parse catalog file: %v", err)
	}
	if err := catalog.Validate(); err != nil {
		log.Fatalf("invalid catalog: %v", err)
	}

	store := storage.NewFileStore(cfg.Registry.Path)
	registry, err := store.Registry()
	if err != nil {
		log.Fatalf("cannot load registry: %v", err)
	}

	settings := model.OptimizationSettings{
		Seed:             *seedPtr,
		TimeLimitSeconds: *timeLimitPtr,
	}

	// Generate
	scheduler := engine.New(zlog)
	var timetables []model.Timetable
	if len(cohortIDs) == 1 {
		timetable, err := scheduler.GenerateSingleCohort(&catalog, cohortIDs[0], settings)
		if err != nil {
			log.Fatalf("generation failed: %v", err)
		}
		timetables = []model.Timetable{timetable}
	} else {
		timetables, err = scheduler.GenerateMultiCohort(&catalog, cohortIDs, settings, registry)
		if err != nil {
			log.Fatalf("generation failed: %v", err)
		}
	}

	for _, timetable := range timetables {
		zlog.Info("generated timetable",
			zap.Strings("cohorts", timetable.CohortIDs),
			zap.Int("entries", len(timetable.Entries)),
			zap.Int("conflicts", len(timetable.Conflicts)),
			zap.Int("score", timetable.Score),
		)
		printGrid(&catalog, timetable)
	}

	// Export
	output, err := json.MarshalIndent(timetables, "", "  ")
	if err != nil {
		log.Fatalf("cannot marshal output: %v", err)
	}
	if *outPtr == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(*outPtr, output, 0o644); err != nil {
		log.Fatalf("cannot write output file: %v", err)
	}

	if *csvPtr != "" {
		file, err := os.Create(*csvPtr)
		if err != nil {
			log.Fatalf("cannot create csv file: %v", err)
		}
		if err := export.WriteCSV(file, &catalog, timetables); err != nil {
			log.Fatalf("csv export failed: %v", err)
		}
		if err := file.Close(); err != nil {
			log.Fatalf("cannot close csv file: %v", err)
		}
	}
	if *xlsxPtr != "" {
		if err := export.WriteXLSX(*xlsxPtr, &catalog, timetables); err != nil {
			log.Fatalf("xlsx export failed: %v", err)
		}
	}

	if *savePtr {
		if err := store.Save(timetables...); err != nil {
			log.Fatalf("cannot save timetables: %v", err)
		}
	}
}

// printGrid writes a day-by-period summary of one timetable to stdout.
func printGrid(catalog *model.Catalog, timetable model.Timetable) {
	grid, err := catalog.Institution.Grid()
	if err != nil {
		return
	}

	cells := map[[2]int]string{}
	for _, entry := range timetable.Entries {
		label := entry.SubjectID
		if subject, ok := catalog.Subject(entry.SubjectID); ok {
			label = subject.Code
		}
		cells[[2]int{entry.Slot.Day, entry.Slot.Period}] = label
	}

	fmt.Printf("\nTimetable %v (score %v)\n", strings.Join(timetable.CohortIDs, ","), timetable.Score)
	fmt.Printf("%-18v", "")
	for _, day := range grid.Days() {
		fmt.Printf("%-12v", day)
	}
	fmt.Println()
	for period := 1; period <= grid.PeriodsPerDay(); period++ {
		timing, _ := grid.Period(period)
		fmt.Printf("%-18v", fmt.Sprintf("P%v %v-%v", period, timegrid.FormatClock(timing.Start), timegrid.FormatClock(timing.End)))
		for day := range grid.Days() {
			label := cells[[2]int{day, period}]
			if label == "" {
				label = "-"
			}
			fmt.Printf("%-12v", label)
		}
		fmt.Println()
	}
	for _, conflict := range timetable.Conflicts {
		fmt.Printf("conflict [%v/%v]: %v\n", conflict.Kind, conflict.Severity, conflict.Description)
	}
}
