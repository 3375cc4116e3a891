package teamforming

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTzSpan_SinglePoint(t *testing.T) {
	assert.Equal(t, 0.0, TzSpan(5.5))
	assert.Equal(t, 0.0, TzSpan())
}

func TestTzSpan_TwoPoints(t *testing.T) {
	assert.InDelta(t, 3.0, TzSpan(1, 4), 1e-9)
	assert.InDelta(t, 2.0, TzSpan(23, 1), 1e-9, "span should cross the wraparound seam")
	assert.InDelta(t, 12.0, TzSpan(0, 12), 1e-9, "antipodal points")
}

func TestTzSpan_AgreesWithTzDist(t *testing.T) {
	pairs := [][2]float64{{0, 12}, {23.5, 0.5}, {3, 3}, {1.25, 22.75}, {8, 17}}
	for _, pair := range pairs {
		assert.InDelta(t, TzDist(pair[0], pair[1]), TzSpan(pair[0], pair[1]), 1e-9,
			"TzSpan of two points must equal TzDist: %v", pair)
	}
}

func TestTzSpan_RotationInvariant(t *testing.T) {
	points := []float64{0.5, 3, 9.25, 22, 23.5}
	base := TzSpan(points...)

	for _, shift := range []float64{0.1, 1, 6, 11.9, 12, 17.3, 23.9} {
		rotated := make([]float64, len(points))
		for i, p := range points {
			rotated[i] = math.Mod(p+shift, 24)
		}
		assert.InDelta(t, base, TzSpan(rotated...), 1e-9, "shift %v changed the span", shift)
	}
}

func TestTzSpan_ClusterAroundSeam(t *testing.T) {
	// Points tightly clustered across the 0/24 boundary.
	assert.InDelta(t, 3.0, TzSpan(22.5, 23, 0, 1.5), 1e-9)
}

func TestTzDist(t *testing.T) {
	assert.InDelta(t, 0.0, TzDist(7, 7), 1e-9)
	assert.InDelta(t, 12.0, TzDist(0, 12), 1e-9)
	assert.InDelta(t, 2.0, TzDist(23, 1), 1e-9)
	assert.InDelta(t, 2.0, TzDist(1, 23), 1e-9)
	assert.InDelta(t, 1.0, TzDist(-0.5, 0.5), 1e-9, "inputs outside [0,24) are normalized")
}
