// Package sensitivity derives the system temperature, effective area, SEFD
// and radiometer noise of MWA tiles from a beam model, and sweeps those
// figures over frequencies and time.
package sensitivity

import (
	"math"
	"mwasens/pkg/domain"
	"time"
)

const (
	// TwoBoltzmann is 2k in Jy m^2 / K.
	TwoBoltzmann = 2760.0
	// WavelengthArea is c^2/(4 pi) in m^2 MHz^2, so A_eff = WavelengthArea / f^2 * gain.
	WavelengthArea = 7161.97
	// FRBWidth is the typical burst width; shorter integrations are
	// quoted at this width.
	FRBWidth = 10 * time.Millisecond
)

// FRBSigmas are the thresholds FRB fluence limits are quoted at.
var FRBSigmas = []float64{5, 10, 20} //nolint: gochecknoglobals

// Gain is the directive gain towards a direction with the given beam power.
// The solid angle comes from a pixel sum and is used as is, which makes the
// gain an approximation.
func Gain(beamPower, solidAngleSr float64) float64 {
	return beamPower / (solidAngleSr / (4 * math.Pi))
}

// EffectiveArea in m^2 with unit antenna efficiency.
func EffectiveArea(freqMHz, gain float64) float64 {
	return WavelengthArea / (freqMHz * freqMHz) * gain
}

// SystemTemperature is T_ant + T_rcv.
func SystemTemperature(antennaK, receiverK float64) float64 {
	return antennaK + receiverK
}

// AOverT is the sensitivity A_eff/T_sys in m^2/K.
func AOverT(aeff, tsys float64) float64 {
	return aeff / tsys
}

// SEFD is 2k/(A/T) in Jy.
func SEFD(aOverT float64) float64 {
	return TwoBoltzmann / aOverT
}

// Noise is the radiometer noise in Jy for antennas stations integrating
// intTimeS seconds over bandwidthHz. A coherent sum uses N(N-1) with N-1
// clamped to 1 for a single station.
func Noise(sefd, bandwidthHz, intTimeS float64, antennas int, coherent bool) float64 {
	n := float64(antennas)
	if !coherent {
		return sefd / math.Sqrt(bandwidthHz*intTimeS*n)
	}
	minus1 := n - 1
	if antennas == 1 {
		minus1 = 1
	}

	return sefd / math.Sqrt(bandwidthHz*intTimeS*n*minus1)
}

// StokesI combines XX and YY figures as 0.5*sqrt(x^2 + y^2). It ignores the
// cross terms.
func StokesI(x, y float64) float64 {
	return 0.5 * math.Sqrt(x*x+y*y)
}

// FRBLimits returns the fluence limits in Jy ms for every sigma. Integrations
// shorter than FRBWidth are quoted at FRBWidth.
func FRBLimits(noiseI float64, intTime time.Duration, sigmas []float64) []domain.FRBLimit {
	width := max(intTime, FRBWidth)
	ms := float64(width) / float64(time.Millisecond)

	out := make([]domain.FRBLimit, 0, len(sigmas))
	for _, s := range sigmas {
		out = append(out, domain.FRBLimit{Sigma: s, FluenceJyMs: noiseI * s * ms, IntegratedMs: ms})
	}

	return out
}
