package main

import (
	"fmt"
	"mwasens/internal/config"
	"mwasens/internal/frb"
	"mwasens/pkg/domain"
	"mwasens/pkg/logger"
	"mwasens/pkg/report"
	"mwasens/pkg/serrors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// writeFRBTable writes one threshold table into dir and returns its path.
func writeFRBTable(dir string, opts frb.Options, th frb.Threshold) (string, error) {
	path := filepath.Join(dir, report.FRBFileName(opts.Channels, opts.FrequencyMHz, th.Sigma))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create output file: %w", err)
	}
	if err := report.WriteFRB(f, th.Rows); err != nil {
		_ = f.Close()

		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close output file: %w", err)
	}

	return path, nil
}

func frbCommand(cfg *config.Config) *cobra.Command {
	opts := frb.NewOptions(cfg)
	var (
		lofar    bool
		fixedFoV bool
		outDir   = cfg.FRB.OutDir
		plot     string
	)

	cmd := &cobra.Command{
		Use:   "frb [freq_mhz] [n_chan]",
		Short: "Estimates the FRB detection rate for a range of integration times",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) >= 1 {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return serrors.Wrap(serrors.ErrBadInput, err, "could not parse frequency %q", args[0])
				}
				opts.FrequencyMHz = v
			}
			if len(args) >= 2 {
				v, err := strconv.Atoi(args[1])
				if err != nil {
					return serrors.Wrap(serrors.ErrBadInput, err, "could not parse number of channels %q", args[1])
				}
				opts.Channels = v
			}
			switch {
			case lofar:
				opts.Policy = frb.PolicyLOFAR
			case fixedFoV:
				opts.Policy = frb.PolicyFixedFoV
			}

			rec, closeMetrics := getMetrics(ctx, cfg, cmd.Name())
			defer closeMetrics()

			sweeper, err := frb.NewSweeper(opts, rec)
			if err != nil {
				return err
			}
			res, err := sweeper.Run(ctx)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("could not create output directory: %w", err)
			}
			bySigma := make(map[float64][]domain.ThresholdResult, len(res.Thresholds))
			for _, th := range res.Thresholds {
				path, err := writeFRBTable(outDir, opts, th)
				if err != nil {
					return err
				}
				rec.Rows(ctx, path, len(th.Rows))
				bySigma[th.Sigma] = th.Rows
				logger.Info(ctx, "threshold table written", zap.String("file", path), zap.Float64("sigma", th.Sigma))
			}

			if plot != "" {
				if err := report.WriteChart(plot, report.FRBRateChart(opts.FrequencyMHz, bySigma)); err != nil {
					return err
				}
				logger.Info(ctx, "chart written", zap.String("file", plot))
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&opts.Polarizations, "n_polarisations", opts.Polarizations, "Number of polarisations")
	alias(fs, "n_polarisations", "n_pols", "npols")
	fs.Float64Var(&opts.SEFD, "sefd", opts.SEFD, "Station SEFD [Jy]")
	fs.BoolVarP(&opts.Coherent, "coherent", "c", false, "Coherent sum of baselines")
	fs.BoolVar(&lofar, "lofar_rate", false, "Use the LOFAR (Pastor-Marazuela 2020) rate")
	fs.Float64Var(&opts.LOFARRate, "lofar_rate_value", opts.LOFARRate, "LOFAR rate [/day/sky above 50 Jy ms]")
	fs.BoolVar(&fixedFoV, "fixed_fov", false, "Use the Shannon (2018) rate over a 30x30 deg field of view with index -2.1")
	fs.Float64Var(&opts.ScalingIndex, "scaling_index", opts.ScalingIndex, "Source count scaling index")
	fs.BoolVar(&opts.Euclidean, "euclidean", false, "Euclidean source count scaling (index -1.5)")
	fs.Bool("verb", false, "Log every integration time")
	fs.Float64Var(&opts.MinElevationDeg, "min_elevation", opts.MinElevationDeg, "Minimum elevation of the visible sky [deg]")
	fs.IntVar(&opts.Antennas, "antnum", opts.Antennas, "Number of stations")
	fs.Float64SliceVar(&opts.Sigmas, "sigmas", opts.Sigmas, "Detection thresholds")
	fs.Float64SliceVar(&opts.IntTimesMs, "inttimes", opts.IntTimesMs, "Integration times [ms]")
	fs.StringVar(&outDir, "outdir", outDir, "Output directory")
	fs.StringVar(&plot, "plot", "", "Write an HTML chart of the rates to this file")

	return cmd
}
