package sensitivity

import (
	"context"
	"fmt"
	"mwasens/pkg/domain"
	"mwasens/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// ResultWriter receives every step result, typically a report table.
type ResultWriter interface {
	Write(r domain.SensitivityResult) error
}

// StepRecorder observes every evaluated step.
type StepRecorder interface {
	Step(ctx context.Context, d time.Duration)
}

// Summary is the outcome of a sweep.
type Summary struct {
	Results []domain.SensitivityResult
	Totals  NoiseTotals
}

// Sweep evaluates a Calculator over time steps and frequencies.
type Sweep struct {
	calc     *Calculator
	options  Options
	writer   ResultWriter
	recorder StepRecorder
}

// NewSweep returns a sweep. writer and recorder may be nil.
func NewSweep(calc *Calculator, options Options, writer ResultWriter, recorder StepRecorder) *Sweep {
	return &Sweep{calc: calc, options: options, writer: writer, recorder: recorder}
}

// Run evaluates every frequency at gps = start, start+IntTime, ... while gps
// is before start+TotalTime. It stops with the context error when ctx is
// cancelled between steps.
func (s *Sweep) Run(ctx context.Context, start int64, frequenciesHz []float64) (Summary, error) {
	var (
		acc NoiseAccumulator
		sum Summary
	)
	step := s.options.IntTime.Seconds()
	end := float64(start) + s.options.TotalTime.Seconds()
	for t := float64(start); t < end; t += step {
		gps := int64(t)
		logger.Debug(ctx, "calculating sensitivity", zap.Int64("gps", gps))

		for _, freq := range frequenciesHz {
			if err := ctx.Err(); err != nil {
				return Summary{}, fmt.Errorf("could not finish sensitivity sweep: %w", err)
			}
			begin := time.Now()

			res, err := s.calc.Calculate(ctx, freq, gps)
			if err != nil {
				return Summary{}, fmt.Errorf("could not calculate sensitivity at %v Hz: %w", freq, err)
			}
			s.logStep(ctx, res)

			if s.writer != nil {
				if err := s.writer.Write(res); err != nil {
					return Summary{}, fmt.Errorf("could not write result: %w", err)
				}
			}
			acc.Add(res)
			sum.Results = append(sum.Results, res)

			if s.recorder != nil {
				s.recorder.Step(ctx, time.Since(begin))
			}
		}
	}

	sum.Totals = acc.Totals()
	if sum.Totals.Count == 0 {
		logger.Warn(ctx, "no sweep steps evaluated",
			zap.Duration("totalTime", s.options.TotalTime),
			zap.Int("frequencies", len(frequenciesHz)),
		)

		return sum, nil
	}
	logger.Info(ctx, "expected image noise",
		zap.Duration("totalTime", s.options.TotalTime),
		zap.Float64("rmsXJy", sum.Totals.RMSX),
		zap.Float64("rmsYJy", sum.Totals.RMSY),
		zap.Float64("rmsIJy", sum.Totals.RMSI),
		zap.Float64("rmsIFromStepsJy", sum.Totals.RMSIFromSteps),
	)
	logger.Info(ctx, "expected image noise weighted by the beam",
		zap.Float64("rmsXJy", sum.Totals.WeightedX),
		zap.Float64("rmsYJy", sum.Totals.WeightedY),
		zap.Float64("rmsIJy", sum.Totals.WeightedI),
	)

	return sum, nil
}

func (s *Sweep) logStep(ctx context.Context, r domain.SensitivityResult) {
	o := s.options
	if logger.IsDebug(ctx) {
		for _, p := range domain.Polarizations {
			ps := r.Pol.Get(p)
			logger.Debug(ctx, "polarization",
				zap.String("pol", string(p)),
				zap.Float64("freqMHz", r.FrequencyMHz()),
				zap.Float64("tantK", ps.AntennaTempK),
				zap.Float64("beam", ps.BeamPower),
				zap.Float64("gain", ps.Gain),
				zap.Float64("aeffM2", ps.EffectiveAreaM2),
				zap.Float64("aOverT", ps.AOverT),
				zap.Float64("sefdJy", ps.SEFDJy),
				zap.Float64("noiseJy", ps.NoiseJy),
			)
		}
	}
	est := o.Pulsar.Estimate(r.StokesISEFDJy, r.StokesINoiseJy, o.BandwidthHz, o.Antennas, o.Coherent(), o.IntTime)
	fields := []zap.Field{
		zap.Int64("gps", r.GPSTime),
		zap.Float64("freqMHz", r.FrequencyMHz()),
		zap.Float64("trcvK", r.ReceiverTempK),
		zap.Float64("noiseXXJy", r.Pol.XX.NoiseJy),
		zap.Float64("noiseYYJy", r.Pol.YY.NoiseJy),
		zap.Float64("noiseIJy", r.StokesINoiseJy),
		zap.Float64("sefdIJy", r.StokesISEFDJy),
		zap.Bool("coherent", o.Coherent()),
	}
	if o.ShowSNR {
		fields = append(fields,
			zap.Float64("peakFluxJy", est.PeakFluxJy),
			zap.Float64("singlePulseSNR", est.SinglePulseSNR),
		)
	}
	logger.Info(ctx, "sensitivity", fields...)

	for _, l := range FRBLimits(r.StokesINoiseJy, o.IntTime, FRBSigmas) {
		logger.Info(ctx, "frb limit",
			zap.Float64("sigma", l.Sigma),
			zap.Float64("fluenceJyMs", l.FluenceJyMs),
			zap.Float64("widthMs", l.IntegratedMs),
		)
	}

	if !o.Pulsar.Folded() {
		return
	}
	fields = []zap.Field{
		zap.Int("phaseBins", est.PhaseBins),
		zap.Float64("perBinNoiseJy", est.PerBinNoiseJy),
		zap.Float64("totalTimeNoiseJy", est.TotalTimeNoiseJy),
	}
	if o.ShowSNR {
		fields = append(fields, zap.Float64("foldedSNR", est.FoldedSNR))
	}
	logger.Info(ctx, "folded profile", fields...)
}
