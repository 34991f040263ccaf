package frb

import (
	"mwasens/internal/config"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"

	"github.com/go-playground/validator/v10"
)

// Options configure one FRB rate sweep. They are typically derived from
// application configuration and overridden by command line flags.
type Options struct {
	// FrequencyMHz is the centre frequency, used for naming and reporting.
	FrequencyMHz float64 `validate:"gt=0"`
	// Channels is the number of coarse channels summed into the band.
	Channels int `validate:"gte=1"`
	// Polarizations is the number of polarizations summed.
	Polarizations int `validate:"gte=1"`
	// SEFD of a single station in Jy.
	SEFD float64
	// Antennas is the number of stations. Zero is not rejected.
	Antennas int `validate:"gte=0"`
	// Coherent sums baselines instead of stations.
	Coherent bool
	// Policy selects the published rate and sky fraction.
	Policy Policy `validate:"oneof=shannon2018 lofar2020 fixed_fov"`
	// LOFARRate is the rate per sky per day used by PolicyLOFAR.
	LOFARRate float64
	// ScalingIndex is the source count index.
	ScalingIndex float64
	// Euclidean overrides ScalingIndex with EuclideanIndex.
	Euclidean bool
	// MinElevationDeg bounds the sky used by PolicyShannon.
	MinElevationDeg float64 `validate:"gte=-90,lte=90"`
	// Sigmas are the detection thresholds.
	Sigmas []float64 `validate:"min=1,dive,gt=0"`
	// IntTimesMs are the integration times swept for every threshold.
	IntTimesMs []float64 `validate:"min=1,dive,gt=0"`
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		FrequencyMHz:    cfg.FRB.FrequencyMHz,
		Channels:        cfg.FRB.Channels,
		Polarizations:   cfg.FRB.Polarizations,
		SEFD:            cfg.FRB.SEFD,
		Antennas:        cfg.FRB.Antennas,
		Policy:          PolicyShannon,
		LOFARRate:       cfg.FRB.LOFARRate,
		ScalingIndex:    cfg.FRB.ScalingIndex,
		MinElevationDeg: cfg.FRB.MinElevationDeg,
		Sigmas:          append([]float64(nil), cfg.FRB.Sigmas...),
		IntTimesMs:      append([]float64(nil), cfg.FRB.IntTimesMs...),
	}
}

// Validate checks the options with their validate tags.
func (o Options) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(o); err != nil {
		return serrors.Wrap(serrors.ErrBadInput, err, "invalid frb options")
	}

	return nil
}

// BandwidthHz is the total bandwidth of Channels coarse channels.
func (o Options) BandwidthHz() float64 {
	return domain.CoarseChannelWidthMHz * float64(o.Channels) * 1e6
}

// Index is the effective source count index.
func (o Options) Index() float64 {
	if o.Euclidean {
		return EuclideanIndex
	}

	return o.ScalingIndex
}
