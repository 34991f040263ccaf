// Package beam models the primary beam of an MWA tile and its integral
// against the sky brightness temperature.
package beam

import (
	"context"
	"mwasens/pkg/domain"
)

// Integral is the result of integrating one polarization's beam over the
// visible hemisphere.
type Integral struct {
	// BeamSkySum is the pixel sum of beam * T_sky.
	BeamSkySum float64
	// BeamSum is the pixel sum of the beam.
	BeamSum float64
	// AntennaTempK is BeamSkySum / BeamSum.
	AntennaTempK float64
	// SolidAngleSr is the beam integrated with the pixel solid angle.
	SolidAngleSr float64
}

//go:generate mockgen -package mockbeam -source=interface.go -destination=mock/mockbeam.go *
type Model interface {
	// SkyIntegral integrates the beam formed by delays at freqHz over the sky
	// visible at gps.
	SkyIntegral(ctx context.Context, gps int64, delays domain.Delays, freqHz float64) (domain.PolPair[Integral], error)
	// Power returns the beam response towards p.
	Power(ctx context.Context, delays domain.Delays, freqHz float64, p domain.Pointing) (domain.PolPair[float64], error)
}
