package engine

import (
	"fmt"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// CheckHardConstraints returns every hard-constraint violation a proposed
// entry causes against the already-placed entries: instructor, room and
// cohort double-booking, plus room capacity against cohort size. It is
// pure (the result depends only on the entry, the existing entries and
// the catalog) and is the gate every placement attempt passes before a
// session is committed.
func CheckHardConstraints(catalog *model.Catalog, entry model.Entry, existing []model.Entry) []model.Conflict {
	conflicts := []model.Conflict{}

	for _, placed := range existing {
		if placed.Slot.Day != entry.Slot.Day || placed.Slot.Period != entry.Slot.Period {
			continue
		}
		if placed.InstructorID == entry.InstructorID {
			conflicts = append(conflicts, model.Conflict{
				Kind:        model.InstructorClash,
				Severity:    model.High,
				Description: fmt.Sprintf("instructor %v is already teaching at %v period %v", entry.InstructorID, entry.Slot.DayName, entry.Slot.Period),
				EntryIDs:    []string{entry.ID, placed.ID},
				Suggestions: []string{
					"assign another eligible instructor",
					"move one of the sessions to a free slot",
				},
			})
		}
		if placed.RoomID == entry.RoomID {
			conflicts = append(conflicts, model.Conflict{
				Kind:        model.RoomClash,
				Severity:    model.High,
				Description: fmt.Sprintf("room %v is already occupied at %v period %v", entry.RoomID, entry.Slot.DayName, entry.Slot.Period),
				EntryIDs:    []string{entry.ID, placed.ID},
				Suggestions: []string{
					"pick a different room with sufficient capacity",
					"move one of the sessions to a free slot",
				},
			})
		}
		if placed.CohortID == entry.CohortID {
			conflicts = append(conflicts, model.Conflict{
				Kind:        model.CohortClash,
				Severity:    model.High,
				Description: fmt.Sprintf("cohort %v already has a session at %v period %v", entry.CohortID, entry.Slot.DayName, entry.Slot.Period),
				EntryIDs:    []string{entry.ID, placed.ID},
				Suggestions: []string{"move one of the sessions to a free slot"},
			})
		}
	}

	room, roomKnown := catalog.Room(entry.RoomID)
	cohort, cohortKnown := catalog.Cohort(entry.CohortID)
	if roomKnown && cohortKnown && room.Capacity < cohort.Size {
		conflicts = append(conflicts, model.Conflict{
			Kind:        model.CapacityShortfall,
			Severity:    model.High,
			Description: fmt.Sprintf("room %v seats %v but cohort %v has %v students", room.ID, room.Capacity, cohort.ID, cohort.Size),
			EntryIDs:    []string{entry.ID},
			Suggestions: []string{
				"assign a larger room",
				"split the cohort across parallel sessions",
			},
		})
	}

	return conflicts
}
