// Package metrics records calculator activity through OpenTelemetry and
// exports it in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "mwasens"

// Recorder counts sweep steps and report rows for one run. It owns a private
// Prometheus registry so runs never share state.
type Recorder struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
	command  attribute.KeyValue

	steps        metric.Int64Counter
	rows         metric.Int64Counter
	stepDuration metric.Float64Histogram
}

// New builds a Recorder whose measurements are labelled with command.
func New(command string) (*Recorder, error) {
	reg := prometheus.NewRegistry()
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := mp.Meter(meterName)

	r := &Recorder{registry: reg, provider: mp, command: attribute.String("command", command)}
	if r.steps, err = meter.Int64Counter("mwasens_sweep_steps",
		metric.WithDescription("Number of evaluated sweep steps.")); err != nil {
		return nil, fmt.Errorf("could not create steps counter: %w", err)
	}
	if r.rows, err = meter.Int64Counter("mwasens_report_rows",
		metric.WithDescription("Number of rows written to report files.")); err != nil {
		return nil, fmt.Errorf("could not create rows counter: %w", err)
	}
	if r.stepDuration, err = meter.Float64Histogram("mwasens_step_duration",
		metric.WithDescription("Time spent evaluating one sweep step."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create step duration histogram: %w", err)
	}

	return r, nil
}

// Step records one evaluated step that took d.
func (r *Recorder) Step(ctx context.Context, d time.Duration) {
	r.steps.Add(ctx, 1, metric.WithAttributes(r.command))
	r.stepDuration.Record(ctx, d.Seconds(), metric.WithAttributes(r.command))
}

// Rows records n rows written to file.
func (r *Recorder) Rows(ctx context.Context, file string, n int) {
	r.rows.Add(ctx, int64(n), metric.WithAttributes(r.command, attribute.String("file", file)))
}

// WriteTextfile writes the current values to path in the node exporter
// textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if err := r.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
