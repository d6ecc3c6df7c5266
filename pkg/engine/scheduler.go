// Package engine is the timetable engine: a backtracking,
// priority-ordered, seeded-randomized placer with multi-attempt restart.
// It is pure over its inputs; committed timetables arrive through a
// read-only registry value and feasibility gaps come back as conflicts
// inside the generated timetables, never as errors.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

const maxAttempts = 10

// acceptableShare is the fraction of the session target an attempt must
// reach before the restart loop may settle early.
const acceptableShare = 0.85

// Scheduler generates weekly timetables from an immutable catalog.
type Scheduler interface {
	// GenerateSingleCohort produces one timetable for one cohort,
	// optionally skipping the settings' avoided (day, period) patterns.
	GenerateSingleCohort(catalog *model.Catalog, cohortID string, settings model.OptimizationSettings) (model.Timetable, error)

	// GenerateMultiCohort produces one timetable per input cohort,
	// coordinated so instructors and rooms are never double-booked across
	// them or against committed timetables of disjoint cohorts. Output
	// order matches the input cohort-id order.
	GenerateMultiCohort(catalog *model.Catalog, cohortIDs []string, settings model.OptimizationSettings, registry model.CommittedRegistry) ([]model.Timetable, error)
}

type scheduler struct {
	log *zap.Logger
}

// New builds a scheduler. A nil logger disables logging.
func New(log *zap.Logger) Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &scheduler{log: log}
}

func (s *scheduler) GenerateSingleCohort(catalog *model.Catalog, cohortID string, settings model.OptimizationSettings) (model.Timetable, error) {
	view, err := newCatalogView(catalog)
	if err != nil {
		return model.Timetable{}, err
	}
	if _, ok := view.cohorts[cohortID]; !ok {
		return model.Timetable{}, fmt.Errorf("%w: %v", ErrUnknownCohort, cohortID)
	}

	seed := deriveSeed(settings)
	result := s.runAttempt(view, settings, []string{cohortID}, nil, seed, false)
	s.log.Debug("single-cohort generation finished",
		zap.String("cohort", cohortID),
		zap.Int64("seed", seed),
		zap.Int("entries", len(result.timetables[0].Entries)),
		zap.Int("score", result.timetables[0].Score),
	)
	return result.timetables[0], nil
}

func (s *scheduler) GenerateMultiCohort(catalog *model.Catalog, cohortIDs []string, settings model.OptimizationSettings, registry model.CommittedRegistry) ([]model.Timetable, error) {
	if len(cohortIDs) < 2 {
		return nil, ErrTooFewCohorts
	}
	view, err := newCatalogView(catalog)
	if err != nil {
		return nil, err
	}

	target := 0
	for _, cohortID := range cohortIDs {
		cohort, ok := view.cohorts[cohortID]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownCohort, cohortID)
		}
		target += view.requiredSessions(cohort)
	}
	minAcceptable := int(acceptableShare * float64(target))

	blocking := registry.BlockingEntries(cohortIDs)
	baseSeed := deriveSeed(settings)
	started := time.Now()

	var best *attemptResult
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// The time limit is advisory: checked between attempts only.
		if attempt > 0 && settings.TimeLimitSeconds > 0 &&
			time.Since(started) >= time.Duration(settings.TimeLimitSeconds)*time.Second {
			break
		}

		seed := attemptSeed(baseSeed, attempt)
		result := s.runAttempt(view, settings, cohortIDs, blocking, seed, true)
		s.log.Debug("multi-cohort attempt finished",
			zap.Int("attempt", attempt+1),
			zap.Int64("seed", seed),
			zap.Int("sessions", result.placedSessions),
			zap.Int("target", target),
		)

		if best == nil || result.betterThan(best) {
			best = &result
		}
		if best.placedSessions >= target {
			break
		}
		if attempt >= 4 && best.placedSessions >= minAcceptable {
			break
		}
	}

	return best.timetables, nil
}

// attemptResult is one full placement pass with a specific seed.
type attemptResult struct {
	timetables     []model.Timetable
	placedSessions int
	totalScore     int
}

func (result attemptResult) betterThan(other *attemptResult) bool {
	if result.placedSessions != other.placedSessions {
		return result.placedSessions > other.placedSessions
	}
	return result.totalScore > other.totalScore
}

// runAttempt executes one seeded placement pass over the cohort set and
// assembles per-cohort timetables in input order.
func (s *scheduler) runAttempt(view *catalogView, settings model.OptimizationSettings, cohortIDs []string, blocking []model.Entry, seed int64, multi bool) attemptResult {
	rng := newLCG(seed)
	attempt := newRun(view, rng, settings, cohortIDs, blocking, multi)

	// Cohort processing order is seeded; output order is not.
	for _, index := range rng.perm(len(cohortIDs)) {
		cohort := view.cohorts[cohortIDs[index]]
		for _, subject := range attempt.orderedSubjects(cohort) {
			if subject.Kind == model.Lab {
				attempt.placeLab(cohort, subject)
			} else {
				attempt.placeTheory(cohort, subject)
			}
		}
	}

	attempt.drainQueue()

	result := attemptResult{timetables: make([]model.Timetable, 0, len(cohortIDs))}
	generatedAt := time.Now()
	for _, cohortID := range cohortIDs {
		cohort := view.cohorts[cohortID]
		entries := []model.Entry{}
		for _, entry := range attempt.entries {
			if entry.CohortID == cohortID {
				entries = append(entries, entry)
			}
		}

		score := scoreOf(attempt.sessions[cohortID], view.requiredSessions(cohort))
		result.timetables = append(result.timetables, model.Timetable{
			ID:          uuid.NewString(),
			GeneratedAt: generatedAt,
			CohortIDs:   []string{cohortID},
			Entries:     entries,
			Conflicts:   attempt.conflicts[cohortID],
			Score:       score,
			Status:      model.Draft,
		})
		result.placedSessions += attempt.sessions[cohortID]
		result.totalScore += score
	}
	return result
}
