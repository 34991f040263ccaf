package main

import (
	"fmt"
	"mwasens/internal/config"
	"mwasens/internal/observation"
	"mwasens/internal/sensitivity"
	"mwasens/pkg/coords"
	"mwasens/pkg/logger"
	"mwasens/pkg/metadata/mwaws"
	"mwasens/pkg/metafits"
	"mwasens/pkg/report"
	"mwasens/pkg/sweetspot"
	"mwasens/pkg/trcv"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// sensitivityFlags holds flag values that need conversion before use.
type sensitivityFlags struct {
	channels       string
	frequencies    string
	az, za         float64
	ra, dec        float64
	intTimeS       float64
	totalTimeS     float64
	pulsarObsTimeS float64
	noZenithNorm   bool
	gridpointsFile string
	outPrefix      string
	dir            string
	plot           string
}

// changed reports whether any of the named flags was set.
func changed(fs *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}

	return false
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func getGridpoints(path string) (sweetspot.Table, error) {
	if path == "" {
		return sweetspot.New(), nil
	}
	t, err := sweetspot.Load(path)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func sensitivityCommand(cfg *config.Config) *cobra.Command {
	opts := sensitivity.NewOptions(cfg)
	req := observation.NewRequest()
	f := sensitivityFlags{
		intTimeS:       cfg.Sensitivity.IntTime.Seconds(),
		totalTimeS:     cfg.Sensitivity.TotalTime.Seconds(),
		pulsarObsTimeS: -1,
		gridpointsFile: cfg.Sensitivity.GridpointsFile,
		outPrefix:      cfg.Sensitivity.OutputPrefix,
	}

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Calculates MWA tile sensitivity and image noise for given observing parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fs := cmd.Flags()

			var err error
			if req.FrequenciesMHz, err = observation.ParseList(f.frequencies); err != nil {
				return fmt.Errorf("could not parse frequency: %w", err)
			}
			if req.Channels, err = observation.ParseList(f.channels); err != nil {
				return fmt.Errorf("could not parse channel: %w", err)
			}
			if changed(fs, "pointing_az_deg", "az") {
				req.AzimuthDeg = &f.az
			}
			if changed(fs, "pointing_za_deg", "za") {
				req.ZenithAngleDeg = &f.za
			}
			if changed(fs, "pointing_ra_deg", "ra") {
				req.RADeg = &f.ra
			}
			if changed(fs, "pointing_dec_deg", "dec") {
				req.DecDeg = &f.dec
			}
			opts.IntTime = seconds(f.intTimeS)
			opts.TotalTime = seconds(f.totalTimeS)
			opts.Pulsar.ObservingTime = seconds(f.pulsarObsTimeS)
			opts.ZenithNorm = !f.noZenithNorm

			if err := opts.Validate(); err != nil {
				return err
			}

			gridpoints, err := getGridpoints(f.gridpointsFile)
			if err != nil {
				return err
			}
			site := coords.Site{
				LongitudeDeg: cfg.Site.LongitudeDeg,
				LatitudeDeg:  cfg.Site.LatitudeDeg,
				HeightM:      cfg.Site.HeightM,
			}
			client := mwaws.New(&http.Client{Timeout: cfg.Metadata.Timeout}, cfg.Metadata.BaseURL)
			resolver := observation.NewResolver(site, metafits.OpenHeader, client, gridpoints)

			obs, err := resolver.Resolve(ctx, req)
			if err != nil {
				return err
			}

			receiver, err := trcv.New(opts.TrcvType, opts.TrcvK)
			if err != nil {
				return err
			}
			logger.Info(ctx, "parameters",
				zap.String("model", opts.Model),
				zap.String("plotType", opts.PlotType),
				zap.String("trcvType", opts.TrcvType),
				zap.Bool("incoherent", opts.Incoherent),
				zap.Int("phaseBins", opts.Pulsar.PhaseBins),
				zap.Duration("pulsarObservingTime", opts.Pulsar.ObservingTime),
				zap.Float64("pulsarPeakFluxJy", opts.Pulsar.PeakFluxJy),
				zap.Duration("intTime", opts.IntTime),
				zap.Duration("totalTime", opts.TotalTime),
				zap.Int("antennas", opts.Antennas),
			)

			prefix := f.outPrefix
			if f.dir != "" {
				if err := os.MkdirAll(f.dir, 0o755); err != nil {
					return fmt.Errorf("could not create output directory: %w", err)
				}
				prefix = filepath.Join(f.dir, prefix)
			}
			writer, err := report.CreateSensitivity(prefix)
			if err != nil {
				return err
			}
			defer func() {
				if err := writer.Close(); err != nil {
					logger.Error(ctx, "could not discard sensitivity tables", zap.Error(err))
				}
			}()

			rec, closeMetrics := getMetrics(ctx, cfg, cmd.Name())
			defer closeMetrics()

			calc := sensitivity.NewCalculator(opts.BeamModel(ctx), receiver, obs.Delays, obs.Pointing, opts)
			sum, err := sensitivity.NewSweep(calc, opts, writer, rec).Run(ctx, obs.GPSTime, obs.FrequenciesHz)
			if err != nil {
				return err
			}
			if err := writer.Commit(); err != nil {
				return err
			}

			paths := writer.Paths()
			rec.Rows(ctx, paths.XX, writer.Rows())
			rec.Rows(ctx, paths.YY, writer.Rows())
			logger.Info(ctx, "sensitivity tables written", zap.String("xx", paths.XX), zap.String("yy", paths.YY))

			if f.plot != "" && len(sum.Results) > 0 {
				if err := report.WriteChart(f.plot, report.NoiseChart(sum.Results)); err != nil {
					return err
				}
				logger.Info(ctx, "chart written", zap.String("file", f.plot))
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.channels, "channel", "c", "", "Centre channel(s) of observation, comma separated")
	alias(fs, "channel", "freq_cc")
	fs.StringVarP(&f.frequencies, "frequency", "f", "", "Centre frequency(s) of observation [MHz], comma separated")
	alias(fs, "frequency", "freq_mhz")
	fs.StringVarP(&req.Delays, "beamformer", "b", req.Delays, "16 beamformer delays separated by commas")
	alias(fs, "beamformer", "delays")
	fs.StringVar(&req.Metafits, "metafits", "", "FITS file to get delays from (can be metafits)")
	fs.Int64VarP(&req.GPS, "gps", "g", 0, "GPS time")
	alias(fs, "gps", "obsid")
	fs.StringVarP(&opts.Model, "model", "m", opts.Model, "Beam model: analytic, advanced, full_EE, full_EE_AAVS05, FEE, Full_EE, 2016, 2015, 2014")
	fs.StringVarP(&opts.PlotType, "plottype", "p", opts.PlotType, "Type of plot: all, beam, sky, beamsky, beamsky_scaled, None")
	fs.Float64Var(&f.az, "pointing_az_deg", 0, "Pointing azimuth [deg]")
	alias(fs, "pointing_az_deg", "az")
	fs.Float64Var(&f.za, "pointing_za_deg", 0, "Pointing zenith angle [deg]")
	alias(fs, "pointing_za_deg", "za")
	fs.Float64Var(&req.ElevationDeg, "pointing_elev_deg", req.ElevationDeg, "Pointing elevation [deg]")
	alias(fs, "pointing_elev_deg", "elev")
	fs.Float64Var(&f.ra, "pointing_ra_deg", 0, "Pointing RA [deg]")
	alias(fs, "pointing_ra_deg", "ra")
	fs.Float64Var(&f.dec, "pointing_dec_deg", 0, "Pointing Dec [deg]")
	alias(fs, "pointing_dec_deg", "dec")
	fs.Float64VarP(&opts.TrcvK, "t_rcv", "r", 0, "Receiver noise temperature for --trcv_type=value [K]")
	fs.StringVar(&opts.TrcvType, "trcv_type", opts.TrcvType, "Receiver temperature model: ung2020, sky_model_fit, value")
	fs.IntVar(&req.Gridpoint, "gridpoint", req.Gridpoint, "Sweet spot gridpoint number; only 0-4 are built in, others need --gridpoints_file")
	fs.StringVar(&f.gridpointsFile, "gridpoints_file", f.gridpointsFile, "YAML file extending the sweet spot table; entries without delays are steered to their pointing")
	fs.BoolVar(&opts.Incoherent, "incoherent", false, "Sensitivity of an incoherent sum")
	alias(fs, "incoherent", "ic")
	fs.IntVar(&opts.Pulsar.PhaseBins, "n_phase_bins", opts.Pulsar.PhaseBins, "Number of phase bins when folding pulsar observations")
	alias(fs, "n_phase_bins", "n_bins")
	fs.Float64Var(&f.pulsarObsTimeS, "pulsar_observing_time", f.pulsarObsTimeS, "Total pulsar observing time [sec], negative means one integration")
	fs.Float64Var(&opts.Pulsar.MeanFluxJy, "pulsar_mean_flux", opts.Pulsar.MeanFluxJy, "Pulsar mean flux density [Jy]")
	alias(fs, "pulsar_mean_flux", "psr_mean_flux")
	fs.Float64Var(&opts.Pulsar.PeakFluxJy, "pulsar_peak_flux", opts.Pulsar.PeakFluxJy, "Pulsar peak flux density [Jy], negative means not specified")
	alias(fs, "pulsar_peak_flux", "psr_peak_flux")
	fs.Float64Var(&opts.Pulsar.PeriodS, "pulsar_period", opts.Pulsar.PeriodS, "Pulsar period [sec]")
	alias(fs, "pulsar_period", "psr_period")
	fs.Float64Var(&opts.Pulsar.PulseWidthS, "pulsar_pulse_width", opts.Pulsar.PulseWidthS, "Pulsar pulse width [sec]")
	alias(fs, "pulsar_pulse_width", "psr_pulse_width")
	fs.BoolVar(&opts.ShowSNR, "snr", false, "Show pulsar SNR")
	alias(fs, "snr", "show_snr")
	fs.Float64VarP(&f.intTimeS, "inttime", "i", f.intTimeS, "Integration time [sec]")
	fs.Float64Var(&f.totalTimeS, "observation_duration", f.totalTimeS, "Total observing time [sec]")
	alias(fs, "observation_duration", "total_observing_time")
	fs.Float64Var(&opts.BandwidthHz, "bandwidth", opts.BandwidthHz, "Bandwidth [Hz]")
	fs.IntVarP(&opts.Antennas, "antnum", "a", opts.Antennas, "Number of tiles")
	fs.BoolVar(&req.UseMetadata, "db", false, "Use the MWA metadata service to get delays and gridpoint of the obsid")
	fs.StringVarP(&f.outPrefix, "outsens_file", "x", f.outPrefix, "Output file prefix for sensitivity tables")
	fs.BoolVarP(&f.noZenithNorm, "no_zenith_norm", "n", false, "Do not normalise the beam to zenith")
	fs.IntVar(&opts.Resolution, "size", opts.Resolution, "Resolution of the beam integral")
	fs.StringVar(&f.dir, "dir", "", "Output directory")
	fs.StringVar(&f.plot, "plot", "", "Write an HTML chart of the noise to this file")

	return cmd
}
