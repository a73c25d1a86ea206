package schemaid

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerRecordsComputeSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	r := New(WithTracer(tp.Tracer("test")))

	_, err := r.GetOrCreate(user{})
	require.NoError(t, err)
	_, err = r.GetOrCreate(user{}) // cached, no span
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "schemaid.compute", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(),
		attribute.String("schemaid.type", "zero-day-ai.schemaid.user"))
	assert.Contains(t, spans[0].Attributes(),
		attribute.String("schemaid.registry", r.id))
}

func TestMeterCountsComputations(t *testing.T) {
	// The noop meter exercises the wiring without an exporter.
	r := New(WithMeter(noop.NewMeterProvider().Meter("test")))

	_, err := r.GetOrCreate(account{})
	require.NoError(t, err)
}

func TestLoggerRecordsComputations(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := New(WithLogger(logger))
	_, err := r.GetOrCreate(user{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "computed schema identity hash")
	assert.Contains(t, out, "zero-day-ai.schemaid.user")
}
