// Package frb estimates how many fast radio bursts a telescope detects above
// its fluence limit, and sweeps that estimate over integration times.
package frb

import (
	"fmt"
	"math"
	"mwasens/pkg/serrors"
)

// Survey is a published all-sky FRB rate above a reference fluence.
type Survey struct {
	Name             string
	RatePerSkyPerDay float64
	FluenceJyMs      float64
}

// Shannon2018 is the ASKAP rate of Shannon et al. (2018): 37 /sky/day above
// 26 Jy ms.
func Shannon2018() Survey {
	return Survey{Name: "Shannon2018", RatePerSkyPerDay: 37, FluenceJyMs: 26}
}

// LOFAR2020 is the Pastor-Marazuela et al. (2020) limit at 150 MHz: rate
// /sky/day above 50 Jy ms.
func LOFAR2020(rate float64) Survey {
	return Survey{Name: "LOFAR2020", RatePerSkyPerDay: rate, FluenceJyMs: 50}
}

// SkyFraction is the fraction of the celestial sphere a telescope sees.
type SkyFraction interface {
	Fraction() float64
	fmt.Stringer
}

// ElevationFraction is the sky above MinElevationDeg: 0.5*(1 - sin(elev)).
type ElevationFraction struct {
	MinElevationDeg float64
}

// Fraction implements SkyFraction.
func (e ElevationFraction) Fraction() float64 {
	return 0.5 * (1 - math.Sin(e.MinElevationDeg*math.Pi/180))
}

func (e ElevationFraction) String() string {
	return fmt.Sprintf("elevation > %.1f deg", e.MinElevationDeg)
}

// FieldOfViewFraction is a WidthDeg x HeightDeg field of view.
type FieldOfViewFraction struct {
	WidthDeg  float64
	HeightDeg float64
}

// MWAFieldOfView is the 30x30 deg field of view of an MWA tile beam.
var MWAFieldOfView = FieldOfViewFraction{WidthDeg: 30, HeightDeg: 30} //nolint: gochecknoglobals

// Fraction implements SkyFraction.
func (f FieldOfViewFraction) Fraction() float64 {
	const deg2rad = math.Pi / 180

	return f.WidthDeg * f.HeightDeg * deg2rad * deg2rad / (4 * math.Pi)
}

func (f FieldOfViewFraction) String() string {
	return fmt.Sprintf("%.0fx%.0f deg field of view", f.WidthDeg, f.HeightDeg)
}

// Rate is an expected number of detections.
type Rate struct {
	PerDay  float64
	PerYear float64
}

// RateAbove scales the survey rate to fluenceJyMs with a power law of index
// and restricts it to the visible sky. Non-positive fluences are not
// rejected and give IEEE results.
func RateAbove(fluenceJyMs float64, s Survey, index float64, sky SkyFraction) Rate {
	perDay := s.RatePerSkyPerDay * math.Pow(fluenceJyMs/s.FluenceJyMs, index) * sky.Fraction()

	return Rate{PerDay: perDay, PerYear: perDay * 365}
}

// Policy selects the survey and sky fraction pairing.
type Policy string

const (
	// PolicyShannon pairs Shannon2018 with the sky above the minimum elevation.
	PolicyShannon Policy = "shannon2018"
	// PolicyLOFAR pairs LOFAR2020 with the MWA field of view.
	PolicyLOFAR Policy = "lofar2020"
	// PolicyFixedFoV is the early estimate: Shannon2018 over the MWA field of
	// view with the index fixed at -2.1.
	PolicyFixedFoV Policy = "fixed_fov"
)

// FixedFoVIndex is the source count index PolicyFixedFoV always uses.
const FixedFoVIndex = -2.1

// EuclideanIndex is the source count index of a non-evolving population in
// Euclidean space.
const EuclideanIndex = -1.5

// Estimator turns a fluence limit into an expected rate.
type Estimator struct {
	Survey Survey
	Index  float64
	Sky    SkyFraction
}

// NewEstimator builds the estimator for policy.
func NewEstimator(policy Policy, index, lofarRate, minElevationDeg float64) (Estimator, error) {
	switch policy {
	case PolicyShannon, "":
		return Estimator{Survey: Shannon2018(), Index: index, Sky: ElevationFraction{MinElevationDeg: minElevationDeg}}, nil
	case PolicyLOFAR:
		return Estimator{Survey: LOFAR2020(lofarRate), Index: index, Sky: MWAFieldOfView}, nil
	case PolicyFixedFoV:
		return Estimator{Survey: Shannon2018(), Index: FixedFoVIndex, Sky: MWAFieldOfView}, nil
	default:
		return Estimator{}, serrors.With(serrors.ErrBadInput, "unknown rate policy %q", policy)
	}
}

// Rate implements the estimate for a fluence limit.
func (e Estimator) Rate(fluenceJyMs float64) Rate {
	return RateAbove(fluenceJyMs, e.Survey, e.Index, e.Sky)
}
