package model

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// SlotPattern identifies a (day, period) cell to avoid during single-cohort
// generation, so repeated runs for the same cohort produce varied layouts.
type SlotPattern struct {
	Day    int `mapstructure:"day"`
	Period int `mapstructure:"period"`
}

// PriorityWeights are reserved tuning knobs in [0, 1]. They currently feed
// the seeded variation only and do not change placement decisions.
type PriorityWeights struct {
	InstructorLoad  float64 `mapstructure:"instructorLoad" validate:"gte=0,lte=1"`
	RoomUtilization float64 `mapstructure:"roomUtilization" validate:"gte=0,lte=1"`
	StudentSchedule float64 `mapstructure:"studentSchedule" validate:"gte=0,lte=1"`
	Constraints     float64 `mapstructure:"constraints" validate:"gte=0,lte=1"`
}

// OptimizationSettings steers one generation call.
//
// Seed fixes the random stream when non-zero; with Seed zero the engine
// derives a seed from the wall clock, a uniform draw and Fingerprint.
type OptimizationSettings struct {
	MaxIterations    int             `mapstructure:"maxIterations"`
	TimeLimitSeconds int             `mapstructure:"timeLimitSeconds"`
	Seed             int64           `mapstructure:"seed"`
	PriorityWeights  PriorityWeights `mapstructure:"priorityWeights"`
	AvoidedPatterns  []SlotPattern   `mapstructure:"avoidedPatterns"`
}

// Avoided reports whether the (day, period) cell is in the avoided set.
func (settings OptimizationSettings) Avoided(day, period int) bool {
	for _, pattern := range settings.AvoidedPatterns {
		if pattern.Day == day && pattern.Period == period {
			return true
		}
	}
	return false
}

// Fingerprint reduces the settings to a deterministic 63-bit value used in
// the seed mix, so distinct settings bias toward distinct layouts.
func (settings OptimizationSettings) Fingerprint() int64 {
	patterns := append([]SlotPattern(nil), settings.AvoidedPatterns...)
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Day != patterns[j].Day {
			return patterns[i].Day < patterns[j].Day
		}
		return patterns[i].Period < patterns[j].Period
	})

	digest := fnv.New64a()
	fmt.Fprintf(digest, "%v|%v|%.4f|%.4f|%.4f|%.4f",
		settings.MaxIterations,
		settings.TimeLimitSeconds,
		settings.PriorityWeights.InstructorLoad,
		settings.PriorityWeights.RoomUtilization,
		settings.PriorityWeights.StudentSchedule,
		settings.PriorityWeights.Constraints,
	)
	for _, pattern := range patterns {
		fmt.Fprintf(digest, "|%v:%v", pattern.Day, pattern.Period)
	}
	return int64(digest.Sum64() >> 1)
}
