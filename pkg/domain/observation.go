package domain

import (
	"fmt"
	"mwasens/pkg/serrors"
	"strconv"
	"strings"
)

// NumDipoles is the number of dipoles (and therefore delays) in an MWA tile.
const NumDipoles = 16

// CoarseChannelWidthMHz is the MWA coarse channel width; channel numbers
// convert to centre frequencies by multiplying with it.
const CoarseChannelWidthMHz = 1.28

// Polarization identifies one of the two instrumental polarizations.
type Polarization string

const (
	// PolXX is the east-west dipole polarization.
	PolXX Polarization = "XX"
	// PolYY is the north-south dipole polarization.
	PolYY Polarization = "YY"
)

// Polarizations lists XX and YY in report order.
var Polarizations = []Polarization{PolXX, PolYY} //nolint: gochecknoglobals

// PolPair holds one value per instrumental polarization.
type PolPair[T any] struct {
	XX T
	YY T
}

// Get returns the value for p.
func (pp PolPair[T]) Get(p Polarization) T {
	if p == PolYY {
		return pp.YY
	}

	return pp.XX
}

// Set stores v as the value for p.
func (pp *PolPair[T]) Set(p Polarization, v T) {
	if p == PolYY {
		pp.YY = v

		return
	}
	pp.XX = v
}

// Delays are the 16 beamformer delays of a tile, in units of the delay quantum.
type Delays [NumDipoles]int

// ParseDelays parses 16 comma-separated integers, or a single integer
// applied to every dipole.
func ParseDelays(s string) (Delays, error) {
	var d Delays
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 1 && len(parts) != NumDipoles {
		return d, serrors.With(serrors.ErrBadInput, "must supply 1 or %d delays, got %d in %q", NumDipoles, len(parts), s)
	}

	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return d, serrors.Wrap(serrors.ErrBadInput, err, "could not parse beamformer delays %q", s)
		}
		d[i] = v
	}
	if len(parts) == 1 {
		for i := range d {
			d[i] = d[0]
		}
	}

	return d, nil
}

// DelaysFromInts converts a delay list returned by an external service.
func DelaysFromInts(in []int) (Delays, error) {
	var d Delays
	if len(in) < NumDipoles {
		return d, serrors.With(serrors.ErrBadInput, "must supply %d delays, got %d", NumDipoles, len(in))
	}
	copy(d[:], in[:NumDipoles])

	return d, nil
}

// String renders the delays in the comma-separated form accepted by ParseDelays.
func (d Delays) String() string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

// Pointing is a horizontal direction: azimuth from north through east and
// zenith angle, both in degrees.
type Pointing struct {
	AzimuthDeg     float64
	ZenithAngleDeg float64
}

// ElevationDeg returns 90 - zenith angle.
func (p Pointing) ElevationDeg() float64 {
	return 90 - p.ZenithAngleDeg
}

func (p Pointing) String() string {
	return fmt.Sprintf("(az,za) = (%.8f,%.8f) [deg]", p.AzimuthDeg, p.ZenithAngleDeg)
}

// Observation is a fully resolved observing setup for the sensitivity sweep.
type Observation struct {
	// FrequenciesHz are the centre frequencies to evaluate.
	FrequenciesHz []float64
	// Delays are the beamformer delays of every tile.
	Delays Delays
	// Pointing is the direction the sensitivity is quoted for.
	Pointing Pointing
	// GPSTime is the start of the observation in GPS seconds.
	GPSTime int64
	// Gridpoint is the sweet-spot index, or -1 when delays were given explicitly.
	Gridpoint int
}
