// Package telemetry provides a way to collect telemetry from function execution - metrics and traces.
package telemetry

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/fcollections/fcollections/internal/errors"
)

const (
	telemeterContextKey ctxKey = iota
)

type ctxKey byte

// RunIDAttribute is the span attribute holding the run identifier.
const RunIDAttribute = "run_id"

// Telemeter collects traces and metrics. The zero value collects nothing.
type Telemeter struct {
	*Tracer
	*Meter
	runID string
}

// NewTelemeter initializes the telemetry collector.
func NewTelemeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Telemeter, error) {
	tracer, err := NewTracer(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	meter, err := NewMeter(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	return &Telemeter{
		Tracer: tracer,
		Meter:  meter,
		runID:  uuid.NewString(),
	}, nil
}

// RunID identifies the process run in spans and logs.
func (tlm *Telemeter) RunID() string {
	return tlm.runID
}

// Shutdown shutdowns the telemetry provider.
func (tlm *Telemeter) Shutdown(ctx context.Context) error {
	if tlm.Tracer != nil && tlm.Tracer.provider != nil {
		if err := tlm.Tracer.provider.Shutdown(ctx); err != nil {
			return errors.New(err)
		}

		tlm.Tracer.provider = nil
	}

	if tlm.Meter != nil && tlm.Meter.provider != nil {
		if err := tlm.Meter.provider.Shutdown(ctx); err != nil {
			return errors.New(err)
		}

		tlm.Meter.provider = nil
	}

	return nil
}

// Collect collects telemetry from function execution metrics and traces.
func (tlm *Telemeter) Collect(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if tlm == nil {
		return fn(ctx)
	}

	if tlm.runID != "" {
		withRunID := make(map[string]any, len(attrs)+1)
		for k, v := range attrs {
			withRunID[k] = v
		}

		withRunID[RunIDAttribute] = tlm.runID
		attrs = withRunID
	}

	// wrap telemetry collection with trace and time metric
	return tlm.Trace(ctx, name, attrs, func(ctx context.Context) error {
		return tlm.Time(ctx, name, attrs, fn)
	})
}

// Count adds value to a counter. It is a no-op without a metric exporter.
func (tlm *Telemeter) Count(ctx context.Context, name string, value int64) {
	if tlm == nil {
		return
	}

	tlm.Meter.Count(ctx, name, value)
}

// ContextWithTelemeter returns a context carrying tlm.
func ContextWithTelemeter(ctx context.Context, tlm *Telemeter) context.Context {
	return context.WithValue(ctx, telemeterContextKey, tlm)
}

// TelemeterFromContext returns the telemeter of ctx, or an empty one collecting
// nothing.
func TelemeterFromContext(ctx context.Context) *Telemeter {
	if val := ctx.Value(telemeterContextKey); val != nil {
		if val, ok := val.(*Telemeter); ok {
			return val
		}
	}

	return new(Telemeter)
}
