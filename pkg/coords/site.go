package coords

import (
	"math"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// GPSToUnixOffset converts GPS seconds to Unix seconds. The leap second count
// is fixed at 17.
const GPSToUnixOffset = 315964783

// GPSToTime returns the UTC time of a GPS second count.
func GPSToTime(gps int64) time.Time {
	return time.Unix(gps+GPSToUnixOffset, 0).UTC()
}

// Site is an observatory location. It converts apparent equatorial
// coordinates without precession, nutation of the position or refraction.
type Site struct {
	LongitudeDeg float64 // east positive
	LatitudeDeg  float64
	HeightM      float64
}

// MWA is the Murchison Widefield Array site.
var MWA = Site{ //nolint: gochecknoglobals
	LongitudeDeg: unit.FromSexa(' ', 116, 40, 14.93),
	LatitudeDeg:  unit.FromSexa('-', 26, 42, 11.95),
	HeightM:      377.8,
}

// Ensure Site conforms to the Converter interface at compile time.
var _ Converter = Site{}

// LocalSiderealDeg returns the apparent local sidereal time at gps in degrees.
func (s Site) LocalSiderealDeg(gps int64) float64 {
	st := sidereal.Apparent(julian.TimeToJD(GPSToTime(gps)))
	lst := math.Mod(float64(st)/240+s.LongitudeDeg, 360)
	if lst < 0 {
		lst += 360
	}

	return lst
}

// Horizontal implements Converter.
func (s Site) Horizontal(raDeg, decDeg float64, gps int64) (domain.Pointing, error) {
	if decDeg < -90 || decDeg > 90 {
		return domain.Pointing{}, serrors.With(serrors.ErrBadInput, "declination %v deg is out of range", decDeg)
	}

	eq := coord.Equatorial{RA: unit.RAFromDeg(raDeg), Dec: unit.AngleFromDeg(decDeg)}
	// meeus measures longitude positive west
	g := globe.Coord{Lat: unit.AngleFromDeg(s.LatitudeDeg), Lon: unit.AngleFromDeg(-s.LongitudeDeg)}
	st := sidereal.Apparent(julian.TimeToJD(GPSToTime(gps)))

	hz := new(coord.Horizontal).EqToHz(&eq, &g, st)

	// meeus measures azimuth westward from the south
	az := math.Mod(hz.Az.Deg()+180, 360)
	if az < 0 {
		az += 360
	}

	return domain.Pointing{AzimuthDeg: az, ZenithAngleDeg: 90 - hz.Alt.Deg()}, nil
}
