package telemetry

import (
	"github.com/gruntwork-io/go-commons/env"
)

// Environment variables configuring the exporters.
const (
	EnvTraceExporter             = "FCOLLECTIONS_TELEMETRY_TRACE_EXPORTER"
	EnvTraceExporterHTTPEndpoint = "FCOLLECTIONS_TELEMETRY_TRACE_EXPORTER_HTTP_ENDPOINT"
	EnvMetricExporter            = "FCOLLECTIONS_TELEMETRY_METRIC_EXPORTER"
	EnvExporterInsecureEndpoint  = "FCOLLECTIONS_TELEMETRY_EXPORTER_INSECURE_ENDPOINT"
	EnvTraceParent               = "TRACEPARENT"
)

// Options selects the telemetry exporters.
type Options struct {
	TraceExporter             string
	TraceExporterHTTPEndpoint string
	MetricExporter            string
	TraceParent               string
	ExporterInsecureEndpoint  bool
}

// NewOptions reads the options from environment variables, as returned by
// env.Parse(os.Environ()).
func NewOptions(vars map[string]string) *Options {
	return &Options{
		TraceExporter:             env.GetString(vars[EnvTraceExporter], string(noneTraceExporterType)),
		TraceExporterHTTPEndpoint: env.GetString(vars[EnvTraceExporterHTTPEndpoint], ""),
		MetricExporter:            env.GetString(vars[EnvMetricExporter], string(noneMetricExporterType)),
		TraceParent:               env.GetString(vars[EnvTraceParent], ""),
		ExporterInsecureEndpoint:  env.GetBool(vars[EnvExporterInsecureEndpoint], false),
	}
}
