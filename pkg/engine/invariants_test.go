package engine

import (
	"fmt"
	"testing"

	"github.com/onsi/gomega"
	"github.com/samber/lo"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// richCatalog mixes single-period theory, continuous theory and labs of
// different lengths across three cohorts.
func richCatalog() model.Catalog {
	return model.Catalog{
		Institution: testInstitution(),
		Subjects: []model.Subject{
			{ID: "T1", Code: "T1", Name: "Theory One", Kind: model.Theory, WeeklyPeriods: 3, SessionsPerWeek: 3, ContinuousPeriods: 1, PreferredTimes: []model.TimeTag{model.Morning}},
			{ID: "T2", Code: "T2", Name: "Theory Two", Kind: model.Theory, WeeklyPeriods: 3, SessionsPerWeek: 3, ContinuousPeriods: 1},
			{ID: "CT1", Code: "CT1", Name: "Continuous Theory", Kind: model.Theory, WeeklyPeriods: 4, SessionsPerWeek: 2, ContinuousPeriods: 2},
			{ID: "L1-lab", Code: "L1", Name: "Lab One", Kind: model.Lab, WeeklyPeriods: 3, SessionsPerWeek: 1, ContinuousPeriods: 3, RequiredEquipment: []string{"benches"}},
			{ID: "L2-lab", Code: "L2", Name: "Lab Two", Kind: model.Lab, WeeklyPeriods: 2, SessionsPerWeek: 1, ContinuousPeriods: 2},
		},
		Instructors: []model.Instructor{
			{ID: "I1", Name: "Ada", EligibleSubjectIDs: []string{"T1", "CT1"}, MaxWeeklyPeriods: 24, MaxDailyPeriods: 6},
			{ID: "I2", Name: "Grace", EligibleSubjectIDs: []string{"T2", "CT1"}, MaxWeeklyPeriods: 24, MaxDailyPeriods: 6, AvoidBackToBack: true},
			{ID: "I3", Name: "Edsger", EligibleSubjectIDs: []string{"L1-lab", "L2-lab"}, MaxWeeklyPeriods: 24, MaxDailyPeriods: 6},
			{ID: "I4", Name: "Barbara", EligibleSubjectIDs: []string{"L1-lab", "L2-lab", "T1", "T2"}, MaxWeeklyPeriods: 24, MaxDailyPeriods: 6, PreferredTimes: []model.TimeTag{model.Afternoon}},
		},
		Rooms: []model.Room{
			{ID: "R1", Name: "Room 1", Kind: model.Classroom, Capacity: 60},
			{ID: "R2", Name: "Room 2", Kind: model.Classroom, Capacity: 60},
			{ID: "R3", Name: "Room 3", Kind: model.Classroom, Capacity: 60},
			{ID: "RL1", Name: "Lab Room 1", Kind: model.LabRoom, Capacity: 50, Equipment: []string{"benches"}},
			{ID: "RL2", Name: "Lab Room 2", Kind: model.LabRoom, Capacity: 50},
		},
		Cohorts: []model.Cohort{
			{ID: "C1", Name: "Cohort 1", Size: 45},
			{ID: "C2", Name: "Cohort 2", Size: 40},
			{ID: "C3", Name: "Cohort 3", Size: 35},
		},
	}
}

// TestGeneratedInvariants sweeps seeds and checks every structural
// invariant a generated timetable must satisfy.
func TestGeneratedInvariants(t *testing.T) {
	g := gomega.NewWithT(t)

	catalog := richCatalog()
	grid := mustGrid(t, catalog)
	scheduler := New(nil)

	blockedSlot, _ := grid.SlotAt(0, 4)
	registry := model.CommittedRegistry{Timetables: []model.Timetable{{
		ID:        "committed",
		CohortIDs: []string{"C0"},
		Entries: []model.Entry{
			{ID: "c0-1", SubjectID: "T1", InstructorID: "I1", RoomID: "R1", CohortID: "C0", Slot: blockedSlot},
		},
	}}}
	blocking := registry.BlockingEntries([]string{"C1", "C2", "C3"})

	for seed := int64(1); seed <= 12; seed++ {
		timetables, err := scheduler.GenerateMultiCohort(&catalog, []string{"C1", "C2", "C3"}, fixedSettings(seed), registry)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(timetables).To(gomega.HaveLen(3))

		all := lo.FlatMap(timetables, func(timetable model.Timetable, _ int) []model.Entry {
			return timetable.Entries
		})
		g.Expect(all).NotTo(gomega.BeEmpty())

		// No instructor, room or cohort is double-booked at any slot.
		instructorSlots := map[string]bool{}
		roomSlots := map[string]bool{}
		cohortSlots := map[string]bool{}
		for _, entry := range all {
			at := fmt.Sprintf("@%v:%v", entry.Slot.Day, entry.Slot.Period)
			g.Expect(instructorSlots).NotTo(gomega.HaveKey(entry.InstructorID+at), "seed %v: instructor double-booked", seed)
			g.Expect(roomSlots).NotTo(gomega.HaveKey(entry.RoomID+at), "seed %v: room double-booked", seed)
			g.Expect(cohortSlots).NotTo(gomega.HaveKey(entry.CohortID+at), "seed %v: cohort double-booked", seed)
			instructorSlots[entry.InstructorID+at] = true
			roomSlots[entry.RoomID+at] = true
			cohortSlots[entry.CohortID+at] = true
		}

		for _, entry := range all {
			// Capacity and eligibility hold for every entry.
			room, ok := catalog.Room(entry.RoomID)
			g.Expect(ok).To(gomega.BeTrue())
			cohort, ok := catalog.Cohort(entry.CohortID)
			g.Expect(ok).To(gomega.BeTrue())
			g.Expect(room.Capacity).To(gomega.BeNumerically(">=", cohort.Size))

			instructor, ok := catalog.Instructor(entry.InstructorID)
			g.Expect(ok).To(gomega.BeTrue())
			g.Expect(instructor.EligibleSubjectIDs).To(gomega.ContainElement(entry.SubjectID))

			// No collision with committed entries of disjoint cohorts.
			for _, committed := range blocking {
				if committed.Slot.Day == entry.Slot.Day && committed.Slot.Period == entry.Slot.Period {
					g.Expect(entry.InstructorID).NotTo(gomega.Equal(committed.InstructorID), "seed %v", seed)
					g.Expect(entry.RoomID).NotTo(gomega.Equal(committed.RoomID), "seed %v", seed)
				}
			}
		}

		// Multi-period sessions form adjacent single-day blocks.
		sessions := lo.GroupBy(all, func(entry model.Entry) string { return entry.SessionID })
		for _, session := range sessions {
			days := lo.Uniq(lo.Map(session, func(entry model.Entry, _ int) int { return entry.Slot.Day }))
			g.Expect(days).To(gomega.HaveLen(1), "seed %v: session split across days", seed)

			periods := lo.Map(session, func(entry model.Entry, _ int) int { return entry.Slot.Period })
			start := lo.Min(periods)
			g.Expect(periods).To(gomega.HaveLen(lo.Max(periods)-start+1), "seed %v: session periods not consecutive", seed)
			g.Expect(grid.IsBlockFeasible(days[0], start, len(periods))).To(gomega.BeTrue(),
				"seed %v: session block not pairwise adjacent", seed)
		}

		// A subject never repeats a period number across days for one
		// cohort, and lab sessions carry their normalized length.
		for _, timetable := range timetables {
			perSubject := lo.GroupBy(timetable.Entries, func(entry model.Entry) string { return entry.SubjectID })
			for subjectID, entries := range perSubject {
				periodDays := map[int]int{}
				for _, entry := range entries {
					if day, ok := periodDays[entry.Slot.Period]; ok {
						g.Expect(day).To(gomega.Equal(entry.Slot.Day),
							"seed %v: %v repeats period %v across days", seed, subjectID, entry.Slot.Period)
					}
					periodDays[entry.Slot.Period] = entry.Slot.Day
				}
			}

			// With a conflict-free result, every required session exists.
			if len(timetable.Conflicts) == 0 {
				subjects := lo.GroupBy(timetable.Entries, func(entry model.Entry) string { return entry.SubjectID })
				for _, subject := range catalog.Subjects {
					expected := subject.SessionsPerWeek
					length := subject.ContinuousPeriods
					if subject.Kind == model.Lab && length < 2 {
						length = max(2, subject.WeeklyPeriods)
						expected = 1
					}
					g.Expect(subjects[subject.ID]).To(gomega.HaveLen(expected*length),
						"seed %v: wrong entry count for %v", seed, subject.ID)
				}
				g.Expect(timetable.Score).To(gomega.Equal(100))
			}
		}
	}
}
