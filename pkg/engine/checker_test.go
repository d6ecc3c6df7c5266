package engine

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

func TestCheckHardConstraints(t *testing.T) {
	catalog := scenarioACatalog()
	grid := mustGrid(t, catalog)
	slot, ok := grid.SlotAt(0, 1)
	require.True(t, ok)
	otherSlot, ok := grid.SlotAt(1, 2)
	require.True(t, ok)

	base := model.Entry{
		ID: "e1", SubjectID: "S1", InstructorID: "I1", RoomID: "R1", CohortID: "C1", Slot: slot,
	}

	kindsOf := func(conflicts []model.Conflict) []model.ConflictKind {
		return lo.Map(conflicts, func(conflict model.Conflict, _ int) model.ConflictKind {
			return conflict.Kind
		})
	}

	t.Run("no existing entries, fitting room", func(t *testing.T) {
		assert.Empty(t, CheckHardConstraints(&catalog, base, nil))
	})

	t.Run("instructor clash", func(t *testing.T) {
		existing := model.Entry{ID: "e2", SubjectID: "S1", InstructorID: "I1", RoomID: "RX", CohortID: "C9", Slot: slot}

		conflicts := CheckHardConstraints(&catalog, base, []model.Entry{existing})

		assert.Contains(t, kindsOf(conflicts), model.InstructorClash)
		assert.NotContains(t, kindsOf(conflicts), model.RoomClash)
		require.NotEmpty(t, conflicts)
		assert.Equal(t, model.High, conflicts[0].Severity)
		assert.Contains(t, conflicts[0].EntryIDs, "e1")
		assert.Contains(t, conflicts[0].EntryIDs, "e2")
		assert.NotEmpty(t, conflicts[0].Suggestions)
	})

	t.Run("room clash", func(t *testing.T) {
		existing := model.Entry{ID: "e2", SubjectID: "S9", InstructorID: "I9", RoomID: "R1", CohortID: "C9", Slot: slot}

		conflicts := CheckHardConstraints(&catalog, base, []model.Entry{existing})

		assert.Equal(t, []model.ConflictKind{model.RoomClash}, kindsOf(conflicts))
	})

	t.Run("cohort clash", func(t *testing.T) {
		existing := model.Entry{ID: "e2", SubjectID: "S9", InstructorID: "I9", RoomID: "RX", CohortID: "C1", Slot: slot}

		conflicts := CheckHardConstraints(&catalog, base, []model.Entry{existing})

		assert.Equal(t, []model.ConflictKind{model.CohortClash}, kindsOf(conflicts))
	})

	t.Run("different slot does not clash", func(t *testing.T) {
		existing := model.Entry{ID: "e2", SubjectID: "S1", InstructorID: "I1", RoomID: "R1", CohortID: "C1", Slot: otherSlot}

		assert.Empty(t, CheckHardConstraints(&catalog, base, []model.Entry{existing}))
	})

	t.Run("capacity shortfall", func(t *testing.T) {
		shrunk := scenarioACatalog()
		shrunk.Rooms[0].Capacity = 30

		conflicts := CheckHardConstraints(&shrunk, base, nil)

		assert.Equal(t, []model.ConflictKind{model.CapacityShortfall}, kindsOf(conflicts))
	})

	t.Run("check is idempotent", func(t *testing.T) {
		existing := []model.Entry{
			{ID: "e2", SubjectID: "S1", InstructorID: "I1", RoomID: "R1", CohortID: "C1", Slot: slot},
		}

		first := CheckHardConstraints(&catalog, base, existing)
		second := CheckHardConstraints(&catalog, base, existing)

		assert.Equal(t, first, second)
	})
}
