package beam

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"
)

const (
	// SpeedOfLight in m/s.
	SpeedOfLight = 299792458.0
	// DelayQuantumS is the step of the analogue beamformer delay lines.
	DelayQuantumS = 435e-12

	dipoleSpacingM = 1.1
	dipoleHeightM  = 0.278
	tileSide       = 4

	defaultResolution = 90
)

// SkyTemperature returns the brightness temperature of the sky in K towards
// (az, za) in radians at freqHz and gps.
type SkyTemperature func(freqHz float64, gps int64, az, za float64) float64

// PowerLawSky is the diffuse sky approximation T = 60 * lambda^2.55 K. It is
// isotropic and does not change with time.
func PowerLawSky(freqHz float64, _ int64, _, _ float64) float64 {
	lambda := SpeedOfLight / freqHz

	return 60 * math.Pow(lambda, 2.55)
}

// Analytic is a short dipole 4x4 tile above an infinite ground plane. Delays
// index the dipoles row by row starting in the north-west corner.
type Analytic struct {
	zenithNorm bool
	resolution int
	sky        SkyTemperature
}

// Ensure Analytic conforms to the Model interface at compile time.
var _ Model = (*Analytic)(nil)

// NewAnalytic builds the tile model. resolution is the number of zenith angle
// rings used for the hemisphere integral; zero selects the default. A nil sky
// selects PowerLawSky.
func NewAnalytic(zenithNorm bool, resolution int, sky SkyTemperature) *Analytic {
	if resolution <= 0 {
		resolution = defaultResolution
	}
	if sky == nil {
		sky = PowerLawSky
	}

	return &Analytic{zenithNorm: zenithNorm, resolution: resolution, sky: sky}
}

// dipolePosition returns the east and north offsets of dipole i from the tile centre.
func dipolePosition(i int) (float64, float64) {
	row, col := i/tileSide, i%tileSide
	half := float64(tileSide-1) / 2

	return (float64(col) - half) * dipoleSpacingM, (half - float64(row)) * dipoleSpacingM
}

// response evaluates XX and YY power for a direction given in radians.
func (a *Analytic) response(delays domain.Delays, freqHz, az, za float64) (float64, float64) {
	k := 2 * math.Pi * freqHz / SpeedOfLight
	sinZA, cosZA := math.Sincos(za)
	sinAz, cosAz := math.Sincos(az)
	east, north := sinZA*sinAz, sinZA*cosAz

	var af complex128
	for i, d := range delays {
		x, y := dipolePosition(i)
		path := x*east + y*north - float64(d)*DelayQuantumS*SpeedOfLight
		af += cmplx.Rect(1, k*path)
	}
	af /= domain.NumDipoles

	ground := 2 * math.Sin(k*dipoleHeightM*cosZA)
	p := (real(af)*real(af) + imag(af)*imag(af)) * ground * ground
	if a.zenithNorm {
		zenith := 2 * math.Sin(k*dipoleHeightM)
		p /= zenith * zenith
	}

	return p * (1 - east*east), p * (1 - north*north)
}

// Power implements Model.
func (a *Analytic) Power(ctx context.Context, delays domain.Delays, freqHz float64, p domain.Pointing) (domain.PolPair[float64], error) {
	if err := ctx.Err(); err != nil {
		return domain.PolPair[float64]{}, fmt.Errorf("could not evaluate beam: %w", err)
	}
	if freqHz <= 0 {
		return domain.PolPair[float64]{}, serrors.With(serrors.ErrBadInput, "frequency must be positive, got %v Hz", freqHz)
	}
	xx, yy := a.response(delays, freqHz, deg2rad(p.AzimuthDeg), deg2rad(p.ZenithAngleDeg))

	return domain.PolPair[float64]{XX: xx, YY: yy}, nil
}

// SkyIntegral implements Model. The hemisphere is split into resolution
// zenith angle rings of 4*resolution azimuth cells each.
func (a *Analytic) SkyIntegral(ctx context.Context,
	gps int64,
	delays domain.Delays,
	freqHz float64,
) (domain.PolPair[Integral], error) {
	var out domain.PolPair[Integral]
	if freqHz <= 0 {
		return out, serrors.With(serrors.ErrBadInput, "frequency must be positive, got %v Hz", freqHz)
	}

	nZA, nAz := a.resolution, 4*a.resolution
	dZA := (math.Pi / 2) / float64(nZA)
	dAz := 2 * math.Pi / float64(nAz)
	for j := 0; j < nZA; j++ {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("could not integrate beam: %w", err)
		}
		za := (float64(j) + 0.5) * dZA
		dOmega := math.Sin(za) * dZA * dAz
		for m := 0; m < nAz; m++ {
			az := (float64(m) + 0.5) * dAz
			xx, yy := a.response(delays, freqHz, az, za)
			t := a.sky(freqHz, gps, az, za)

			out.XX.BeamSum += xx
			out.XX.BeamSkySum += xx * t
			out.XX.SolidAngleSr += xx * dOmega
			out.YY.BeamSum += yy
			out.YY.BeamSkySum += yy * t
			out.YY.SolidAngleSr += yy * dOmega
		}
	}
	for _, in := range []*Integral{&out.XX, &out.YY} {
		if in.BeamSum > 0 {
			in.AntennaTempK = in.BeamSkySum / in.BeamSum
		}
	}

	return out, nil
}

// PointingDelays returns the integer delays that steer the tile towards p.
func PointingDelays(p domain.Pointing) domain.Delays {
	var d domain.Delays
	az, za := deg2rad(p.AzimuthDeg), deg2rad(p.ZenithAngleDeg)
	sinZA := math.Sin(za)
	sinAz, cosAz := math.Sincos(az)

	raw := make([]float64, domain.NumDipoles)
	lowest := math.Inf(1)
	for i := range raw {
		x, y := dipolePosition(i)
		raw[i] = (x*sinZA*sinAz + y*sinZA*cosAz) / (DelayQuantumS * SpeedOfLight)
		lowest = min(lowest, raw[i])
	}
	for i, v := range raw {
		d[i] = int(math.Round(v - lowest))
	}

	return d
}

func deg2rad(v float64) float64 { return v * math.Pi / 180 }
