package sensitivity

import (
	"math"
	"mwasens/pkg/domain"
)

// NoiseAccumulator aggregates the noise of every sweep step.
type NoiseAccumulator struct {
	count int

	sumX2, sumY2, sumI2 float64

	weightedX, weightedY, weightedI float64
	sumBeam2                        float64
}

// NoiseTotals are the aggregates of a sweep.
type NoiseTotals struct {
	Count int
	// RMSX and RMSY are sqrt(sum noise^2)/count per polarization.
	RMSX, RMSY float64
	// RMSI is StokesI(RMSX, RMSY).
	RMSI float64
	// RMSIFromSteps is sqrt(sum noise_I^2)/count.
	RMSIFromSteps float64
	// Beam weighted sums normalised by the sum of squared beam values.
	WeightedX, WeightedY, WeightedI float64
}

// Add accumulates one step. The beam weight is the mean of the XX and YY
// beam power.
func (a *NoiseAccumulator) Add(r domain.SensitivityResult) {
	x, y, i := r.Pol.XX.NoiseJy, r.Pol.YY.NoiseJy, r.StokesINoiseJy
	b := (r.Pol.XX.BeamPower + r.Pol.YY.BeamPower) / 2

	a.count++
	a.sumX2 += x * x
	a.sumY2 += y * y
	a.sumI2 += i * i
	a.weightedX += (x * b) * (x * b)
	// the Y term mixes in XX, matching the published SMART numbers
	a.weightedY += (y * b) * (x * b)
	a.weightedI += (i * b) * (i * b)
	a.sumBeam2 += b * b
}

// Count returns the number of accumulated steps.
func (a *NoiseAccumulator) Count() int { return a.count }

// Totals computes the aggregates. Without steps all values are NaN.
func (a *NoiseAccumulator) Totals() NoiseTotals {
	n := float64(a.count)
	t := NoiseTotals{
		Count:         a.count,
		RMSX:          math.Sqrt(a.sumX2) / n,
		RMSY:          math.Sqrt(a.sumY2) / n,
		RMSIFromSteps: math.Sqrt(a.sumI2) / n,
		WeightedX:     a.weightedX / a.sumBeam2,
		WeightedY:     a.weightedY / a.sumBeam2,
		WeightedI:     a.weightedI / a.sumBeam2,
	}
	t.RMSI = StokesI(t.RMSX, t.RMSY)

	return t
}
