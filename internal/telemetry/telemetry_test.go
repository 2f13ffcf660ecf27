package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcollections/fcollections/internal/telemetry"
)

func TestNewOptions(t *testing.T) {
	t.Parallel()

	opts := telemetry.NewOptions(map[string]string{
		telemetry.EnvTraceExporter:            "console",
		telemetry.EnvExporterInsecureEndpoint: "true",
	})

	assert.Equal(t, "console", opts.TraceExporter)
	assert.Equal(t, "none", opts.MetricExporter)
	assert.True(t, opts.ExporterInsecureEndpoint)
	assert.Empty(t, opts.TraceParent)
}

func TestNewTraceExporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      *telemetry.Options
		expectNil bool
		expectErr bool
	}{
		{
			name:      "none exporter",
			opts:      &telemetry.Options{TraceExporter: "none"},
			expectNil: true,
		},
		{
			name:      "empty exporter",
			opts:      &telemetry.Options{},
			expectNil: true,
		},
		{
			name: "console exporter",
			opts: &telemetry.Options{TraceExporter: "console"},
		},
		{
			name:      "http exporter without endpoint",
			opts:      &telemetry.Options{TraceExporter: "http"},
			expectErr: true,
		},
		{
			name:      "unknown exporter",
			opts:      &telemetry.Options{TraceExporter: "carrier-pigeon"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exporter, err := telemetry.NewTraceExporter(context.Background(), io.Discard, tt.opts)
			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tt.expectNil {
				assert.Nil(t, exporter)
			} else {
				assert.NotNil(t, exporter)
			}
		})
	}
}

func TestNewMetricExporterUnknown(t *testing.T) {
	t.Parallel()

	_, err := telemetry.NewMetricExporter(context.Background(), io.Discard, &telemetry.Options{MetricExporter: "carrier-pigeon"})
	require.Error(t, err)

	var unknownErr telemetry.UnknownExporterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "metric", unknownErr.Kind)
}

func TestNewTracerInvalidTraceParent(t *testing.T) {
	t.Parallel()

	_, err := telemetry.NewTracer(context.Background(), "fcollections", "test", io.Discard, &telemetry.Options{
		TraceExporter: "console",
		TraceParent:   "not-a-traceparent",
	})
	require.Error(t, err)
}

func TestTelemeterWithoutExporters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tlm, err := telemetry.NewTelemeter(ctx, "fcollections", "test", io.Discard, &telemetry.Options{})
	require.NoError(t, err)
	assert.Nil(t, tlm.Tracer)
	assert.Nil(t, tlm.Meter)
	assert.NotEmpty(t, tlm.RunID())

	expected := errors.New("boom")

	err = tlm.Collect(ctx, "list_files", nil, func(context.Context) error { return expected })
	require.ErrorIs(t, err, expected)

	tlm.Count(ctx, "files", 3)
	require.NoError(t, tlm.Shutdown(ctx))
}

func TestTelemeterConsoleTrace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	buf := new(bytes.Buffer)

	tlm, err := telemetry.NewTelemeter(ctx, "fcollections", "test", buf, &telemetry.Options{
		TraceExporter: "console",
		TraceParent:   "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
	})
	require.NoError(t, err)

	called := false

	err = tlm.Collect(ctx, "list_files", map[string]any{"product": "l3_nadir"}, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	require.NoError(t, tlm.Shutdown(ctx))
	assert.Contains(t, buf.String(), "list_files")
	assert.Contains(t, buf.String(), tlm.RunID())
	assert.Contains(t, buf.String(), "4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestTelemeterFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	empty := telemetry.TelemeterFromContext(ctx)
	require.NotNil(t, empty)
	require.NoError(t, empty.Collect(ctx, "noop", nil, func(context.Context) error { return nil }))

	tlm := &telemetry.Telemeter{}
	assert.Same(t, tlm, telemetry.TelemeterFromContext(telemetry.ContextWithTelemeter(ctx, tlm)))
}

func TestCleanMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"list_files", "list_files"},
		{"list files.duration", "list_files_duration"},
		{"__leading--and//trailing__", "leading_and_trailing"},
		{"a..b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, telemetry.CleanMetricName(tt.input))
		})
	}
}
