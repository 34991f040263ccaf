package report

import (
	"fmt"
	"mwasens/pkg/domain"
	"os"
	"slices"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one named line of a chart.
type Series struct {
	Name string
	Y    []float64
}

// LineChart builds a line chart over categorical x labels. logY switches the
// y axis to a logarithmic scale.
func LineChart(title, xName, yName string, x []string, logY bool, series ...Series) *charts.Line {
	yType := "value"
	if logY {
		yType = "log"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       title,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Type: "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xName,
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Type:  yType,
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	line.SetXAxis(x)
	for _, s := range series {
		data := make([]opts.LineData, len(s.Y))
		for i, v := range s.Y {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}

	return line
}

// FRBRateChart plots the expected rate per year against integration time,
// one line per sigma level. All row sets must share integration times.
func FRBRateChart(freqMHz float64, bySigma map[float64][]domain.ThresholdResult) *charts.Line {
	sigmas := make([]float64, 0, len(bySigma))
	for s := range bySigma {
		sigmas = append(sigmas, s)
	}
	slices.Sort(sigmas)

	var x []string
	series := make([]Series, 0, len(sigmas))
	for _, s := range sigmas {
		rows := bySigma[s]
		if x == nil {
			x = make([]string, len(rows))
			for i, r := range rows {
				x[i] = strconv.FormatFloat(r.IntTimeMs, 'f', -1, 64)
			}
		}
		y := make([]float64, len(rows))
		for i, r := range rows {
			y[i] = r.RatePerSkyYear
		}
		series = append(series, Series{Name: fmt.Sprintf("%.1f sigma", s), Y: y})
	}

	return LineChart(fmt.Sprintf("Expected FRB rate at %.2f MHz", freqMHz),
		"integration time [ms]", "FRBs / year", x, true, series...)
}

// NoiseChart plots XX, YY and Stokes I noise of every sweep step.
func NoiseChart(results []domain.SensitivityResult) *charts.Line {
	sameTime := true
	for _, r := range results {
		if r.GPSTime != results[0].GPSTime {
			sameTime = false

			break
		}
	}

	x := make([]string, len(results))
	xx, yy, i := make([]float64, len(results)), make([]float64, len(results)), make([]float64, len(results))
	for n, r := range results {
		x[n] = fmt.Sprintf("%.2f", r.FrequencyMHz())
		if !sameTime {
			x[n] = fmt.Sprintf("%d/%.2f", r.GPSTime, r.FrequencyMHz())
		}
		xx[n] = r.Pol.XX.NoiseJy
		yy[n] = r.Pol.YY.NoiseJy
		i[n] = r.StokesINoiseJy
	}

	xName := "frequency [MHz]"
	if !sameTime {
		xName = "gps / frequency [MHz]"
	}

	return LineChart("Expected image noise", xName, "noise [Jy]", x, false,
		Series{Name: string(domain.PolXX), Y: xx},
		Series{Name: string(domain.PolYY), Y: yy},
		Series{Name: "Stokes I", Y: i},
	)
}

// WriteChart renders c as a standalone HTML page at path.
func WriteChart(path string, c *charts.Line) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create chart file: %w", err)
	}
	if err := c.Render(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("could not render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close chart file: %w", err)
	}

	return nil
}
