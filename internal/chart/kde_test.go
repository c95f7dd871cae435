package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolinOutline(t *testing.T) {
	vals := []float64{1e5, 3e5, 5e5, 2e6, 8e6}
	outline := violinOutline(vals, 1.0, 0.35)

	require.Len(t, outline, 2*kdeGridSize)

	for i, pt := range outline {
		assert.Greater(t, pt.Y, 0.0, "point %d must sit above zero for the log axis", i)
		assert.InDelta(t, 1.0, pt.X, 0.35+1e-9, "point %d must stay within the half-width", i)
	}

	// The two edges mirror each other around the center line
	n := len(outline)
	for i := 0; i < kdeGridSize; i++ {
		right := outline[i]
		left := outline[n-1-i]
		assert.InDelta(t, right.Y, left.Y, 1e-9)
		assert.InDelta(t, 2.0, right.X+left.X, 1e-9)
	}
}

func TestViolinOutlineSinglePoint(t *testing.T) {
	outline := violinOutline([]float64{4.2e7}, 0, 0.35)
	require.NotNil(t, outline)

	// The fallback bandwidth still produces a body around the point
	widest := 0.0
	for _, pt := range outline {
		widest = math.Max(widest, math.Abs(pt.X))
	}
	assert.InDelta(t, 0.35, widest, 1e-6)
}

func TestViolinOutlineEmpty(t *testing.T) {
	assert.Nil(t, violinOutline(nil, 0, 0.35))
}

func TestSilvermanBandwidth(t *testing.T) {
	assert.Equal(t, 0.1, silvermanBandwidth(nil))
	assert.Equal(t, 0.1, silvermanBandwidth([]float64{5}))
	assert.Equal(t, 0.1, silvermanBandwidth([]float64{5, 5, 5}))

	bw := silvermanBandwidth([]float64{5, 6, 7, 8})
	assert.Greater(t, bw, 0.0)
}

func TestGaussianKDE(t *testing.T) {
	xs := []float64{0, 0, 0}
	peak := gaussianKDE(xs, 1, 0)
	tail := gaussianKDE(xs, 1, 3)
	assert.Greater(t, peak, tail)

	// Density of a single standard kernel at its center
	single := gaussianKDE([]float64{0}, 1, 0)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), single, 1e-12)
}
