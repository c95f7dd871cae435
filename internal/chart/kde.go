package chart

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// kdeGridSize is the number of sample points along each violin body.
const kdeGridSize = 64

// violinOutline returns the closed outline of a violin body for vals,
// centered at x with the given maximum half-width.
//
// Counts span several orders of magnitude and are drawn on a log-scaled
// axis, so the density estimate runs in log10 space and each grid point is
// mapped back through 10^t for drawing. A linear-space estimate over values
// from 1e5 to 1e10 collapses into a spike at the origin.
// All vals must be positive.
func violinOutline(vals []float64, x, halfWidth float64) plotter.XYs {
	if len(vals) == 0 {
		return nil
	}

	logs := make([]float64, len(vals))
	for i, v := range vals {
		logs[i] = math.Log10(v)
	}

	bw := silvermanBandwidth(logs)

	lo, hi := logs[0], logs[0]
	for _, t := range logs {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	// Pad by one bandwidth so the body tapers off instead of being cut
	lo -= bw
	hi += bw

	grid := make([]float64, kdeGridSize)
	density := make([]float64, kdeGridSize)
	step := (hi - lo) / float64(kdeGridSize-1)
	maxDensity := 0.0
	for i := range grid {
		grid[i] = lo + float64(i)*step
		density[i] = gaussianKDE(logs, bw, grid[i])
		maxDensity = math.Max(maxDensity, density[i])
	}
	if maxDensity == 0 {
		return nil
	}

	// Right edge bottom-to-top, then left edge top-to-bottom, closing the
	// polygon around the body.
	outline := make(plotter.XYs, 0, 2*kdeGridSize)
	for i := 0; i < kdeGridSize; i++ {
		w := halfWidth * density[i] / maxDensity
		outline = append(outline, plotter.XY{X: x + w, Y: math.Pow(10, grid[i])})
	}
	for i := kdeGridSize - 1; i >= 0; i-- {
		w := halfWidth * density[i] / maxDensity
		outline = append(outline, plotter.XY{X: x - w, Y: math.Pow(10, grid[i])})
	}
	return outline
}

// silvermanBandwidth returns Silverman's rule-of-thumb bandwidth for xs.
// Degenerate samples (fewer than two points, or zero spread) fall back to a
// tenth of a decade so the body still has some height.
func silvermanBandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return 0.1
	}
	sd := stat.StdDev(xs, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0.1
	}
	return 1.06 * sd * math.Pow(float64(len(xs)), -0.2)
}

// gaussianKDE evaluates the Gaussian kernel density estimate of xs at t
func gaussianKDE(xs []float64, bw, t float64) float64 {
	norm := 1.0 / (float64(len(xs)) * bw * math.Sqrt(2*math.Pi))
	sum := 0.0
	for _, v := range xs {
		u := (t - v) / bw
		sum += math.Exp(-0.5 * u * u)
	}
	return norm * sum
}
