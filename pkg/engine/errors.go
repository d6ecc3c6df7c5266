package engine

import "errors"

// Input errors surfaced before placement begins. Everything that goes
// wrong after inputs validate is reported as conflicts inside the
// returned timetable, never as an error.
var (
	ErrEmptyCatalog  = errors.New("engine: catalog has no subjects, instructors, rooms or cohorts")
	ErrUnknownCohort = errors.New("engine: unknown cohort id")
	ErrTooFewCohorts = errors.New("engine: multi-cohort generation requires at least two cohorts")
)
