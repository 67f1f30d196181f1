package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestTracedOperation(t *testing.T) {
	tracer := otel.Tracer("tracing-test")

	result, err := TracedOperation(context.Background(), tracer, "lookup", func(ctx context.Context) (string, error) {
		return "found", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "found", result)

	opErr := errors.New("lookup failed")
	result, err = TracedOperation(context.Background(), tracer, "lookup", func(ctx context.Context) (string, error) {
		return "", opErr
	})
	assert.ErrorIs(t, err, opErr)
	assert.Empty(t, result)
}

func TestTracedVoidOperation(t *testing.T) {
	tracer := otel.Tracer("tracing-test")

	called := false
	err := TracedVoidOperation(context.Background(), tracer, "save", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	opErr := errors.New("save failed")
	err = TracedVoidOperation(context.Background(), tracer, "save", func(ctx context.Context) error {
		return opErr
	})
	assert.ErrorIs(t, err, opErr)
}

func TestMapCarrier(t *testing.T) {
	carrier := MapCarrier{}
	carrier.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))
	assert.Empty(t, carrier.Get("tracestate"))
	assert.ElementsMatch(t, []string{"traceparent"}, carrier.Keys())
}
