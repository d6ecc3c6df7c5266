package engine

import (
	"math/rand"
	"time"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// Park-Miller linear congruential generator. The state is an explicit
// value so a whole generation run is reproducible from its seed.
const (
	lcgMultiplier = 16807
	lcgModulus    = 1<<31 - 1
)

type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	seed %= lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	if seed == 0 {
		seed = 1
	}
	return &lcg{state: seed}
}

func (generator *lcg) next() int64 {
	generator.state = generator.state * lcgMultiplier % lcgModulus
	return generator.state
}

func (generator *lcg) intn(bound int) int {
	if bound <= 1 {
		return 0
	}
	return int(generator.next() % int64(bound))
}

func (generator *lcg) float64() float64 {
	return float64(generator.next()) / float64(lcgModulus)
}

func (generator *lcg) coin() bool {
	return generator.next()%2 == 0
}

// perm returns a seeded permutation of [0, n).
func (generator *lcg) perm(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := generator.intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}

func shuffled[T any](generator *lcg, items []T) []T {
	result := make([]T, len(items))
	for i, j := range generator.perm(len(items)) {
		result[i] = items[j]
	}
	return result
}

// runOptions are the per-attempt knobs the seed selects.
type runOptions struct {
	startPeriodOffset int // in [1, 4]
	preferEarlier     bool
	randomizeSlots    bool
	timeFlexibility   int // in {0, 1, 2}; relaxes preference-based ordering
}

func drawRunOptions(generator *lcg) runOptions {
	return runOptions{
		startPeriodOffset: 1 + generator.intn(4),
		preferEarlier:     generator.coin(),
		randomizeSlots:    generator.coin(),
		timeFlexibility:   generator.intn(3),
	}
}

// deriveSeed fixes the random stream. A non-zero settings seed is taken
// verbatim; otherwise the seed mixes the wall clock, a uniform draw and a
// deterministic function of the settings.
func deriveSeed(settings model.OptimizationSettings) int64 {
	if settings.Seed != 0 {
		return settings.Seed
	}
	mixed := time.Now().UnixNano() ^ rand.Int63() ^ settings.Fingerprint()
	if mixed < 0 {
		mixed = -mixed
	}
	return mixed
}

// attemptSeed spreads restart attempts over distinct streams while staying
// a pure function of the base seed.
func attemptSeed(base int64, attempt int) int64 {
	return newLCG(base + int64(attempt)).next()
}
