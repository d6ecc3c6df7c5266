package engine

import "math"

// scoreOf reduces placement completeness to the advisory quality score:
// the rounded percentage of required sessions that were scheduled. It
// never influences placement beyond attempt selection during restarts.
func scoreOf(placed, required int) int {
	if required <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(placed) / float64(required)))
}
