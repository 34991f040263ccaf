package sensitivity

import (
	"mwasens/pkg/domain"
	"time"
)

// Pulsar describes the reference pulsar and the folding setup.
type Pulsar struct {
	MeanFluxJy float64 `validate:"gte=0"`
	// PeakFluxJy overrides the mean-flux estimate when positive.
	PeakFluxJy  float64
	PeriodS     float64
	PulseWidthS float64
	// PhaseBins below one disables folding.
	PhaseBins int
	// ObservingTime is the folded observation length. Zero or negative
	// means one integration.
	ObservingTime time.Duration
}

// PeakFlux is PeakFluxJy when given, else the mean flux scaled by the duty cycle.
func (p Pulsar) PeakFlux() float64 {
	if p.PeakFluxJy > 0 {
		return p.PeakFluxJy
	}

	return p.MeanFluxJy * (p.PeriodS / p.PulseWidthS)
}

// Folded reports whether a folded profile is estimated.
func (p Pulsar) Folded() bool { return p.PhaseBins >= 1 }

// Estimate returns the single pulse figures for one step, and the folded
// profile figures when folding is enabled.
func (p Pulsar) Estimate(sefdI, noiseI, bandwidthHz float64, antennas int, coherent bool, intTime time.Duration) domain.PulsarEstimate {
	peak := p.PeakFlux()
	est := domain.PulsarEstimate{
		PeakFluxJy:     peak,
		SinglePulseSNR: peak / noiseI,
	}
	if !p.Folded() {
		return est
	}

	obs := p.ObservingTime
	if obs <= 0 {
		obs = intTime
	}
	est.PhaseBins = p.PhaseBins
	est.PerBinNoiseJy = Noise(sefdI, bandwidthHz, obs.Seconds()/float64(p.PhaseBins), antennas, coherent)
	est.TotalTimeNoiseJy = Noise(sefdI, bandwidthHz, obs.Seconds(), antennas, coherent)
	est.FoldedSNR = peak / est.PerBinNoiseJy

	return est
}
