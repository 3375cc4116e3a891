package teamforming

import (
	"math"
	"sort"
)

// hoursPerDay is the circumference of the timezone circle.
const hoursPerDay = 24

// normalizeTz maps any offset onto [0, 24).
func normalizeTz(tz float64) float64 {
	return math.Mod(math.Mod(tz, hoursPerDay)+hoursPerDay, hoursPerDay)
}

// TzSpan returns the length of the minimal arc on the 24-hour circle that
// contains every given point. A single point has span 0.
//
// The points are sorted, the largest gap between circularly consecutive
// points is found (including the wraparound gap from the last point back to
// the first), and the span is the rest of the circle.
func TzSpan(tzs ...float64) float64 {
	if len(tzs) <= 1 {
		return 0
	}

	sorted := make([]float64, len(tzs))
	for i, tz := range tzs {
		sorted[i] = normalizeTz(tz)
	}
	sort.Float64s(sorted)

	maxGap := sorted[0] - sorted[len(sorted)-1] + hoursPerDay
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	return hoursPerDay - maxGap
}

// TzDist returns the minimal arc distance between two points.
// Special case of TzSpan kept separate because it is called in tight loops.
func TzDist(a, b float64) float64 {
	d := math.Abs(normalizeTz(a) - normalizeTz(b))
	return math.Min(d, hoursPerDay-d)
}
