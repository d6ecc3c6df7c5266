// Package timegrid models the weekly teaching grid: the ordered set of
// (day, period) slots derived from an institution calendar, and the
// adjacency relation between periods that multi-period sessions rely on.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is one teaching slot within a day. Start and End are wall-clock
// minutes of day. Numbers are 1-based and dense within a day.
type Period struct {
	Number int
	Start  int
	End    int
}

// Break is a scheduled interval (lunch, tea) during which no teaching
// happens. A break splits adjacency even between back-to-back periods.
type Break struct {
	Name  string
	Start int
	End   int
}

// Slot is a concrete (day, period) cell of the grid.
type Slot struct {
	Day     int // index into the working-day list
	DayName string
	Period  int // 1-based period number
	Start   int // minutes of day
	End     int
}

// Grid is the canonical weekly grid. It is immutable after construction.
type Grid struct {
	days    []string
	periods []Period
	breaks  []Break
	runs    [][]int // maximal runs of pairwise-adjacent period numbers
}

// New builds a grid from an ordered working-day list and the day's period
// timings in ascending period order. Period numbers must be dense from 1.
func New(days []string, periods []Period, breaks []Break) (*Grid, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("timegrid: no working days")
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("timegrid: no periods")
	}
	for i, period := range periods {
		if period.Number != i+1 {
			return nil, fmt.Errorf("timegrid: period numbers must be dense from 1, got %v at position %v", period.Number, i)
		}
		if period.Start >= period.End {
			return nil, fmt.Errorf("timegrid: period %v has non-positive duration", period.Number)
		}
		if i > 0 && periods[i-1].End > period.Start {
			return nil, fmt.Errorf("timegrid: period %v overlaps period %v", period.Number, periods[i-1].Number)
		}
	}

	grid := &Grid{
		days:    append([]string(nil), days...),
		periods: append([]Period(nil), periods...),
		breaks:  append([]Break(nil), breaks...),
	}
	grid.runs = grid.buildRuns()
	return grid, nil
}

// Days returns the ordered working-day names.
func (grid *Grid) Days() []string {
	return grid.days
}

// PeriodsPerDay returns the number of periods on each working day.
func (grid *Grid) PeriodsPerDay() int {
	return len(grid.periods)
}

// Period returns the timing of the given 1-based period number.
func (grid *Grid) Period(number int) (Period, bool) {
	if number < 1 || number > len(grid.periods) {
		return Period{}, false
	}
	return grid.periods[number-1], true
}

// SlotAt returns the concrete slot for a day index and period number.
func (grid *Grid) SlotAt(day, period int) (Slot, bool) {
	if day < 0 || day >= len(grid.days) {
		return Slot{}, false
	}
	timing, ok := grid.Period(period)
	if !ok {
		return Slot{}, false
	}
	return Slot{
		Day:     day,
		DayName: grid.days[day],
		Period:  period,
		Start:   timing.Start,
		End:     timing.End,
	}, true
}

// Slots returns every (day, period) slot ordered by day index then period.
func (grid *Grid) Slots() []Slot {
	slots := make([]Slot, 0, len(grid.days)*len(grid.periods))
	for day := range grid.days {
		for _, timing := range grid.periods {
			slots = append(slots, Slot{
				Day:     day,
				DayName: grid.days[day],
				Period:  timing.Number,
				Start:   timing.Start,
				End:     timing.End,
			})
		}
	}
	return slots
}

// IsAdjacent reports whether b directly follows a: same day, consecutive
// period numbers, zero time gap and no break covering the transition.
func (grid *Grid) IsAdjacent(a, b Slot) bool {
	if a.Day != b.Day || b.Period != a.Period+1 {
		return false
	}
	return grid.periodsAdjacent(a.Period)
}

// IsBlockFeasible reports whether length consecutive periods starting at
// startPeriod exist on day and are pairwise adjacent.
func (grid *Grid) IsBlockFeasible(day, startPeriod, length int) bool {
	if day < 0 || day >= len(grid.days) || length < 1 {
		return false
	}
	if startPeriod < 1 || startPeriod+length-1 > len(grid.periods) {
		return false
	}
	for period := startPeriod; period < startPeriod+length-1; period++ {
		if !grid.periodsAdjacent(period) {
			return false
		}
	}
	return true
}

// Runs returns the maximal runs of pairwise-adjacent period numbers. The
// timings repeat on every working day, so the runs are day-independent.
func (grid *Grid) Runs() [][]int {
	return grid.runs
}

// periodsAdjacent reports whether period and period+1 touch with no break.
func (grid *Grid) periodsAdjacent(period int) bool {
	if period < 1 || period >= len(grid.periods) {
		return false
	}
	first, second := grid.periods[period-1], grid.periods[period]
	if first.End != second.Start {
		return false
	}
	for _, pause := range grid.breaks {
		// A break beginning at or before the transition instant and
		// extending past it splits the pair.
		if pause.Start <= first.End && pause.End > first.End {
			return false
		}
	}
	return true
}

func (grid *Grid) buildRuns() [][]int {
	runs := [][]int{}
	current := []int{1}
	for period := 1; period < len(grid.periods); period++ {
		if grid.periodsAdjacent(period) {
			current = append(current, period+1)
			continue
		}
		runs = append(runs, current)
		current = []int{period + 1}
	}
	return append(runs, current)
}

// ParseClock converts a "HH:MM" wall-clock string to minutes of day.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("timegrid: malformed clock %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("timegrid: malformed clock %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("timegrid: malformed clock %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("timegrid: clock %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes of day back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
