package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/fcollections/fcollections/internal/errors"
)

const (
	noneMetricExporterType     metricExporterType = "none"
	consoleMetricExporterType  metricExporterType = "console"
	otlpHTTPMetricExporterType metricExporterType = "otlpHttp"

	metricReadInterval = time.Second
	durationSuffix     = "_duration"
)

type metricExporterType string

// Meter records durations and counters. A nil Meter records nothing.
type Meter struct {
	metric.Meter
	provider   *sdkmetric.MeterProvider
	counters   *xsync.MapOf[string, metric.Int64Counter]
	histograms *xsync.MapOf[string, metric.Int64Histogram]
}

// NewMeter creates and configures the metrics collection. It returns nil when no
// exporter is configured.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	r, err := newResource(appName, appVersion)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(r),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricReadInterval))),
	)

	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:      provider.Meter(appName),
		provider:   provider,
		counters:   xsync.NewMapOf[string, metric.Int64Counter](),
		histograms: xsync.NewMapOf[string, metric.Int64Histogram](),
	}, nil
}

// NewMetricExporter creates a new exporter based on the telemetry options.
func NewMetricExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	switch metricExporterType(opts.MetricExporter) {
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.ExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case consoleMetricExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	case noneMetricExporterType, "":
		return nil, nil
	default:
		return nil, errors.New(UnknownExporterError{Kind: "metric", Name: opts.MetricExporter})
	}
}

// Time records the duration of fn in milliseconds.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil {
		return fn(ctx)
	}

	histogram, err := meter.histogram(CleanMetricName(name + durationSuffix))
	if err != nil {
		return fn(ctx)
	}

	start := time.Now()
	err = fn(ctx)

	histogram.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(mapToAttributes(attrs)...))

	return err
}

// Count adds value to the counter name.
func (meter *Meter) Count(ctx context.Context, name string, value int64) {
	if meter == nil || meter.provider == nil {
		return
	}

	name = CleanMetricName(name)

	counter, ok := meter.counters.Load(name)
	if !ok {
		created, err := meter.Int64Counter(name)
		if err != nil {
			return
		}

		counter, _ = meter.counters.LoadOrStore(name, created)
	}

	counter.Add(ctx, value)
}

func (meter *Meter) histogram(name string) (metric.Int64Histogram, error) {
	if histogram, ok := meter.histograms.Load(name); ok {
		return histogram, nil
	}

	histogram, err := meter.Int64Histogram(name, metric.WithUnit("ms"))
	if err != nil {
		return nil, errors.New(err)
	}

	histogram, _ = meter.histograms.LoadOrStore(name, histogram)

	return histogram, nil
}
