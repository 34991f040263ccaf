package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It holds the defaults of both calculators, the observatory site, the
// metadata service client and metrics export. Command line flags override
// the values loaded here.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// FRB contains the defaults of the FRB rate estimator
	FRB struct {
		// FrequencyMHz is the observing frequency when not given as an argument
		FrequencyMHz float64 `env:"FRB_FREQUENCY_MHZ" env-default:"160" yaml:"frequencyMHz"`
		// Channels is the number of 1.28 MHz coarse channels
		Channels int `env:"FRB_CHANNELS" env-default:"24" yaml:"channels"`
		// Polarizations is the number of summed polarizations
		Polarizations int `env:"FRB_POLARIZATIONS" env-default:"2" yaml:"polarizations"`
		// SEFD is the system equivalent flux density of one station in Jy
		SEFD float64 `env:"FRB_SEFD" env-default:"50931.8" yaml:"sefd"`
		// Antennas is the number of stations combined
		Antennas int `env:"FRB_ANTENNAS" env-default:"128" yaml:"antennas"`
		// MinElevationDeg bounds the visible sky for the elevation sky fraction
		MinElevationDeg float64 `env:"FRB_MIN_ELEVATION_DEG" env-default:"20" yaml:"minElevationDeg"`
		// ScalingIndex is the source count index
		ScalingIndex float64 `env:"FRB_SCALING_INDEX" env-default:"-2.1" yaml:"scalingIndex"`
		// LOFARRate is the LOFAR 2020 rate per sky per day above 50 Jy ms
		LOFARRate float64 `env:"FRB_LOFAR_RATE" env-default:"3" yaml:"lofarRate"`
		// Sigmas are the detection thresholds to report
		Sigmas []float64 `env:"FRB_SIGMAS" env-default:"3,10" yaml:"sigmas"`
		// IntTimesMs are the integration times of the sweep
		IntTimesMs []float64 `env:"FRB_INTTIMES_MS" env-default:"1,10,50,100,150,200,300,500,762,1000,2000,2286,3000,4000,5000,10000" yaml:"intTimesMs"` //nolint: lll
		// OutDir is where report files are written
		OutDir string `env:"FRB_OUTDIR" env-default:"." yaml:"outDir"`
	} `yaml:"frb"`

	// Sensitivity contains the defaults of the MWA sensitivity estimator
	Sensitivity struct {
		// Model is the beam model name
		Model string `env:"SENSITIVITY_MODEL" env-default:"analytic" yaml:"model"`
		// PlotType is the sky map product name
		PlotType string `env:"SENSITIVITY_PLOT_TYPE" env-default:"beamsky" yaml:"plotType"`
		// IntTime is the integration time of one step
		IntTime time.Duration `env:"SENSITIVITY_INTTIME" env-default:"120s" yaml:"intTime"`
		// TotalTime is the observation length swept in IntTime steps
		TotalTime time.Duration `env:"SENSITIVITY_TOTAL_TIME" env-default:"120s" yaml:"totalTime"`
		// BandwidthHz is the bandwidth used in the radiometer equation
		BandwidthHz float64 `env:"SENSITIVITY_BANDWIDTH_HZ" env-default:"1280000" yaml:"bandwidthHz"`
		// Antennas is the number of tiles
		Antennas int `env:"SENSITIVITY_ANTENNAS" env-default:"128" yaml:"antennas"`
		// TrcvType selects the receiver temperature model
		TrcvType string `env:"SENSITIVITY_TRCV_TYPE" env-default:"ung2020" yaml:"trcvType"`
		// Resolution is the number of zenith angle rings of the beam integral
		Resolution int `env:"SENSITIVITY_RESOLUTION" env-default:"90" yaml:"resolution"`
		// OutputPrefix is the report file prefix, _XX.txt and _YY.txt are appended
		OutputPrefix string `env:"SENSITIVITY_OUTPUT_PREFIX" env-default:"eda_sensitivity" yaml:"outputPrefix"`
		// GridpointsFile optionally extends the built-in sweet spot table
		GridpointsFile string `env:"SENSITIVITY_GRIDPOINTS_FILE" yaml:"gridpointsFile"`

		// Pulsar holds the reference pulsar (B0950+08) used for SNR estimates
		Pulsar struct {
			MeanFluxJy  float64 `env:"PULSAR_MEAN_FLUX_JY" env-default:"2.37" yaml:"meanFluxJy"`
			PeakFluxJy  float64 `env:"PULSAR_PEAK_FLUX_JY" env-default:"-1000" yaml:"peakFluxJy"`
			PeriodS     float64 `env:"PULSAR_PERIOD_S" env-default:"0.2530651649482" yaml:"periodS"`
			PulseWidthS float64 `env:"PULSAR_PULSE_WIDTH_S" env-default:"0.021" yaml:"pulseWidthS"`
			PhaseBins   int     `env:"PULSAR_PHASE_BINS" env-default:"1" yaml:"phaseBins"`
		} `yaml:"pulsar"`
	} `yaml:"sensitivity"`

	// Site is the observatory location used for RA/Dec conversion
	Site struct {
		LongitudeDeg float64 `env:"SITE_LONGITUDE_DEG" env-default:"116.67081388888889" yaml:"longitudeDeg"`
		LatitudeDeg  float64 `env:"SITE_LATITUDE_DEG" env-default:"-26.703319444444445" yaml:"latitudeDeg"`
		HeightM      float64 `env:"SITE_HEIGHT_M" env-default:"377.8" yaml:"heightM"`
	} `yaml:"site"`

	// Metadata contains the observation metadata service client settings
	Metadata struct {
		// BaseURL is the service root
		BaseURL string `env:"METADATA_BASE_URL" env-default:"http://ws.mwatelescope.org" yaml:"baseURL"`
		// Timeout bounds one lookup
		Timeout time.Duration `env:"METADATA_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"metadata"`

	// Metrics contains run metrics export settings
	Metrics struct {
		// Textfile is written in the Prometheus text format after a run when set
		Textfile string `env:"METRICS_TEXTFILE" yaml:"textfile"`
	} `yaml:"metrics"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When path is empty or the file does not exist only the environment and the
// defaults are used.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("could not read config: %w", err)
			}

			return &cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("could not stat config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return &cfg, nil
}
