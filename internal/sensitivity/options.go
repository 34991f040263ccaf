package sensitivity

import (
	"context"
	"mwasens/internal/config"
	"mwasens/pkg/beam"
	"mwasens/pkg/logger"
	"mwasens/pkg/serrors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ModelAnalytic is the only beam model evaluated locally.
const ModelAnalytic = "analytic"

// PlotNone disables the sky map product.
const PlotNone = "None"

// Options configure the sensitivity sweep.
type Options struct {
	// Model is the beam model name. Every accepted name is evaluated with the
	// analytic tile model.
	Model string `validate:"oneof=analytic advanced full_EE full_EE_AAVS05 FEE Full_EE 2016 2015 2014"`
	// PlotType names the sky map product.
	PlotType string `validate:"oneof=all beam sky beamsky beamsky_scaled None"`

	IntTime     time.Duration `validate:"gt=0"`
	TotalTime   time.Duration
	BandwidthHz float64 `validate:"gt=0"`

	// Antennas is not bounded below; zero tiles yields Inf noise.
	Antennas   int
	Incoherent bool

	// TrcvType selects the receiver temperature model, TrcvK is used by the
	// fixed value model.
	TrcvType string
	TrcvK    float64

	ZenithNorm bool
	// Resolution is the number of zenith angle rings of the beam integral.
	Resolution int `validate:"gte=0"`

	ShowSNR bool
	Pulsar  Pulsar
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	s := cfg.Sensitivity

	return Options{
		Model:       s.Model,
		PlotType:    s.PlotType,
		IntTime:     s.IntTime,
		TotalTime:   s.TotalTime,
		BandwidthHz: s.BandwidthHz,
		Antennas:    s.Antennas,
		TrcvType:    s.TrcvType,
		ZenithNorm:  true,
		Resolution:  s.Resolution,
		Pulsar: Pulsar{
			MeanFluxJy:  s.Pulsar.MeanFluxJy,
			PeakFluxJy:  s.Pulsar.PeakFluxJy,
			PeriodS:     s.Pulsar.PeriodS,
			PulseWidthS: s.Pulsar.PulseWidthS,
			PhaseBins:   s.Pulsar.PhaseBins,
		},
	}
}

// Validate checks the options with their validate tags.
func (o Options) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(o); err != nil {
		return serrors.Wrap(serrors.ErrBadInput, err, "invalid sensitivity options")
	}

	return nil
}

// Coherent reports whether noise is quoted for an interferometric image.
func (o Options) Coherent() bool { return !o.Incoherent }

// BeamModel returns the beam model for o.Model. Names other than
// ModelAnalytic are accepted and evaluated with the analytic model.
func (o Options) BeamModel(ctx context.Context) beam.Model {
	if o.Model != ModelAnalytic {
		logger.Warn(ctx, "beam model is not available, using analytic", zap.String("model", o.Model))
	}

	return beam.NewAnalytic(o.ZenithNorm, o.Resolution, nil)
}
