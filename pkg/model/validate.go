package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct-level validator over the catalog and then the
// cross-entity checks the tags cannot express: dangling ids, duplicate
// ids, and subject session arithmetic.
func (catalog *Catalog) Validate() error {
	if err := validate.Struct(catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if _, err := catalog.Institution.Grid(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	subjectIDs := make(map[string]bool, len(catalog.Subjects))
	for _, subject := range catalog.Subjects {
		id := subject.ID
		if id == "" {
			id = DeriveSubjectID(subject.Code, subject.Kind)
		}
		if subjectIDs[id] {
			return fmt.Errorf("catalog: duplicate subject id %q", id)
		}
		subjectIDs[id] = true

		if subject.ContinuousPeriods > subject.WeeklyPeriods {
			return fmt.Errorf("catalog: subject %q: continuous periods %v exceed weekly periods %v",
				id, subject.ContinuousPeriods, subject.WeeklyPeriods)
		}
	}

	roomIDs := make(map[string]bool, len(catalog.Rooms))
	for _, room := range catalog.Rooms {
		if roomIDs[room.ID] {
			return fmt.Errorf("catalog: duplicate room id %q", room.ID)
		}
		roomIDs[room.ID] = true
	}

	instructorIDs := make(map[string]bool, len(catalog.Instructors))
	for _, instructor := range catalog.Instructors {
		if instructorIDs[instructor.ID] {
			return fmt.Errorf("catalog: duplicate instructor id %q", instructor.ID)
		}
		instructorIDs[instructor.ID] = true

		for _, subjectID := range instructor.EligibleSubjectIDs {
			if !subjectIDs[subjectID] {
				return fmt.Errorf("catalog: instructor %q references unknown subject %q", instructor.ID, subjectID)
			}
		}
		for _, roomID := range instructor.PreferredRoomIDs {
			if !roomIDs[roomID] {
				return fmt.Errorf("catalog: instructor %q references unknown room %q", instructor.ID, roomID)
			}
		}
	}

	cohortIDs := make(map[string]bool, len(catalog.Cohorts))
	for _, cohort := range catalog.Cohorts {
		if cohortIDs[cohort.ID] {
			return fmt.Errorf("catalog: duplicate cohort id %q", cohort.ID)
		}
		cohortIDs[cohort.ID] = true

		for _, subjectID := range cohort.MandatorySubjectIDs {
			if !subjectIDs[subjectID] {
				return fmt.Errorf("catalog: cohort %q references unknown subject %q", cohort.ID, subjectID)
			}
		}
	}

	return nil
}
