package engine

import (
	"sort"

	"github.com/samber/lo"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// orderedSubjects returns a cohort's curriculum in placement order: labs
// first, then multi-period theory blocks, then single-period subjects.
// Longer indivisible blocks have the fewest feasible placements, so they
// go first; ties are broken by the seeded shuffle.
func (attempt *run) orderedSubjects(cohort model.Cohort) []model.Subject {
	subjects := attempt.view.cohortSubjects(cohort)

	labs := lo.Filter(subjects, func(subject model.Subject, _ int) bool {
		return subject.Kind == model.Lab
	})
	continuous := lo.Filter(subjects, func(subject model.Subject, _ int) bool {
		return subject.Kind != model.Lab && subject.ContinuousPeriods > 1
	})
	singles := lo.Filter(subjects, func(subject model.Subject, _ int) bool {
		return subject.Kind != model.Lab && subject.ContinuousPeriods <= 1
	})

	ordered := make([]model.Subject, 0, len(subjects))
	ordered = append(ordered, shuffled(attempt.rng, labs)...)
	ordered = append(ordered, shuffled(attempt.rng, continuous)...)
	return append(ordered, shuffled(attempt.rng, singles)...)
}

// candidateInstructors returns the instructors eligible for a subject in
// seeded order.
func (attempt *run) candidateInstructors(subject model.Subject) []model.Instructor {
	return shuffled(attempt.rng, attempt.view.eligible[subject.ID])
}

// candidateRooms returns the rooms able to seat the cohort, seeded and
// then ranked: matching room kind first, required equipment next, the
// instructor's preferred rooms ahead of the rest.
func (attempt *run) candidateRooms(subject model.Subject, cohort model.Cohort, instructor model.Instructor) []model.Room {
	fitting := lo.Filter(attempt.view.rooms, func(room model.Room, _ int) bool {
		return room.Capacity >= cohort.Size
	})

	ranked := shuffled(attempt.rng, fitting)
	sort.SliceStable(ranked, func(i, j int) bool {
		return roomRank(ranked[i], subject, instructor) < roomRank(ranked[j], subject, instructor)
	})
	return ranked
}

func roomRank(room model.Room, subject model.Subject, instructor model.Instructor) int {
	rank := 0
	if preferredRoomKind(subject.Kind) != room.Kind {
		rank += 4
	}
	if !room.HasEquipment(subject.RequiredEquipment) {
		rank += 2
	}
	if !lo.Contains(instructor.PreferredRoomIDs, room.ID) {
		rank++
	}
	return rank
}

func preferredRoomKind(kind model.SubjectKind) model.RoomKind {
	switch kind {
	case model.Lab:
		return model.LabRoom
	case model.Seminar:
		return model.SeminarHall
	default:
		return model.Classroom
	}
}

// candidateDays returns a seeded permutation of working-day indices.
func (attempt *run) candidateDays() []int {
	return attempt.rng.perm(len(attempt.view.grid.Days()))
}
