package frb

import (
	"context"
	"fmt"
	"math"
	"mwasens/pkg/domain"
	"mwasens/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// Boltzmann is the Boltzmann constant in Jy m^2 / K.
const Boltzmann = 1380.0

// Combined is the number of independent signals summed: the stations for an
// incoherent sum, or the N(N-1)/2 baselines for a coherent one.
func Combined(antennas int, coherent bool) float64 {
	n := float64(antennas)
	if coherent {
		return n * (n - 1) / 2
	}

	return n
}

// Sensitivity is the radiometer noise in Jy of combined signals.
func Sensitivity(sefd, bandwidthHz, intTimeS float64, polarizations int, combined float64) float64 {
	return sefd / math.Sqrt(bandwidthHz*intTimeS*float64(polarizations)*combined)
}

// Summary holds the per-run constants of the sweep.
type Summary struct {
	BandwidthHz   float64
	Combined      float64
	StationAOverT float64
	StationSEFD   float64
	TelescopeSEFD float64
	Estimator     Estimator
}

// Threshold is the sweep of one sigma level over all integration times.
type Threshold struct {
	Sigma float64
	Rows  []domain.ThresholdResult
}

// Result is the outcome of a sweep.
type Result struct {
	Summary    Summary
	Thresholds []Threshold
}

// StepRecorder observes every evaluated step.
type StepRecorder interface {
	Step(ctx context.Context, d time.Duration)
}

// Sweeper evaluates the detection limit and expected rate for every
// (sigma, integration time) pair.
type Sweeper struct {
	// options holds the validated sweep parameters.
	options Options
	// estimator converts fluence limits into rates.
	estimator Estimator
	// recorder is optional.
	recorder StepRecorder
}

// NewSweeper validates options and builds a Sweeper. recorder may be nil.
func NewSweeper(options Options, recorder StepRecorder) (*Sweeper, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(options.Policy, options.Index(), options.LOFARRate, options.MinElevationDeg)
	if err != nil {
		return nil, err
	}

	return &Sweeper{options: options, estimator: est, recorder: recorder}, nil
}

// Summary returns the constants of the configured sweep.
func (s *Sweeper) Summary() Summary {
	o := s.options
	n := Combined(o.Antennas, o.Coherent)

	return Summary{
		BandwidthHz:   o.BandwidthHz(),
		Combined:      n,
		StationAOverT: 2 * Boltzmann / o.SEFD,
		StationSEFD:   o.SEFD,
		TelescopeSEFD: o.SEFD / math.Sqrt(n),
		Estimator:     s.estimator,
	}
}

// Run evaluates the sweep. It stops with the context error when ctx is
// cancelled between steps.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	o := s.options
	sum := s.Summary()
	logger.Info(ctx, "frb sweep parameters",
		zap.Float64("frequencyMHz", o.FrequencyMHz),
		zap.Int("channels", o.Channels),
		zap.Float64("bandwidthMHz", sum.BandwidthHz/1e6),
		zap.Int("polarizations", o.Polarizations),
		zap.Bool("coherent", o.Coherent),
		zap.Int("antennas", o.Antennas),
		zap.String("survey", sum.Estimator.Survey.Name),
		zap.Float64("ratePerSkyPerDay", sum.Estimator.Survey.RatePerSkyPerDay),
		zap.Float64("scalingIndex", sum.Estimator.Index),
		zap.Bool("euclidean", o.Euclidean),
		zap.Stringer("sky", sum.Estimator.Sky),
	)
	logger.Info(ctx, "telescope",
		zap.Float64("stationAOverT", sum.StationAOverT),
		zap.Float64("stationSEFD", sum.StationSEFD),
		zap.Float64("telescopeSEFD", sum.TelescopeSEFD),
	)

	res := Result{Summary: sum, Thresholds: make([]Threshold, 0, len(o.Sigmas))}
	for _, sigma := range o.Sigmas {
		th := Threshold{Sigma: sigma, Rows: make([]domain.ThresholdResult, 0, len(o.IntTimesMs))}
		for _, ms := range o.IntTimesMs {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("could not finish frb sweep: %w", err)
			}
			start := time.Now()

			sens := Sensitivity(o.SEFD, sum.BandwidthHz, ms/1000, o.Polarizations, sum.Combined)
			limit := sens * sigma * ms
			rate := s.estimator.Rate(limit)
			row := domain.ThresholdResult{
				IntTimeMs:      ms,
				Sigma:          sigma,
				SensitivityMJy: sens * 1000,
				LimitJyMs:      limit,
				RatePerSkyDay:  rate.PerDay,
				RatePerSkyYear: rate.PerYear,
			}
			th.Rows = append(th.Rows, row)

			logger.Debug(ctx, "threshold step",
				zap.Float64("intTimeMs", ms),
				zap.Float64("sensitivityMJy", row.SensitivityMJy),
				zap.Float64("sigma", sigma),
				zap.Float64("limitJyMs", limit),
				zap.Float64("perDay", rate.PerDay),
				zap.Float64("perYear", rate.PerYear),
			)
			if s.recorder != nil {
				s.recorder.Step(ctx, time.Since(start))
			}
		}
		res.Thresholds = append(res.Thresholds, th)
	}

	return res, nil
}
