package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/logging"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
)

func newTestConsumer() *Consumer {
	return NewConsumer(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Start blocks the calling goroutine until the context is cancelled, so the
// worker entrypoint must run it in the background to reach its shutdown
// signal handling.
func TestConsumerStartBlocksUntilContextCancelled(t *testing.T) {
	consumer := newTestConsumer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("Start returned before cancellation: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestHandleEventRoutesToTypedHandler(t *testing.T) {
	consumer := newTestConsumer()

	var got *cloudevents.ShopCloudEvent
	consumer.Subscribe("shopit.orders.events", "shopit.order.placed", func(ctx context.Context, event *cloudevents.ShopCloudEvent) error {
		got = event
		return nil
	})

	event := &cloudevents.ShopCloudEvent{ID: "evt-1", Type: "shopit.order.placed"}
	require.NoError(t, consumer.handleEvent(context.Background(), "shopit.orders.events", event))
	require.NotNil(t, got)
	assert.Equal(t, "evt-1", got.ID)
}

func TestHandleEventUnknownTopic(t *testing.T) {
	consumer := newTestConsumer()

	event := &cloudevents.ShopCloudEvent{ID: "evt-1", Type: "shopit.order.placed"}
	err := consumer.handleEvent(context.Background(), "shopit.orders.events", event)
	assert.Error(t, err)
}

func TestMessageMetaFromContext(t *testing.T) {
	_, ok := MessageMetaFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithMessageMeta(context.Background(), MessageMeta{Partition: 3, Offset: 42})
	meta, ok := MessageMetaFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, 3, meta.Partition)
	assert.Equal(t, int64(42), meta.Offset)
}

// The instrumented wrapper logs and traces with the real partition/offset
// the consumer loop attached to the handler context.
func TestInstrumentedHandlerSeesMessageCoordinates(t *testing.T) {
	consumer := newTestConsumer()

	logConfig := logging.DefaultConfig("kafka-test")
	logConfig.Output = io.Discard
	instrumented := NewInstrumentedConsumer(consumer, metrics.New(metrics.DefaultConfig("kafka-test")), logging.New(logConfig))

	var seen MessageMeta
	var seenOK bool
	instrumented.Subscribe("shopit.orders.events", "shopit.order.placed", func(ctx context.Context, event *cloudevents.ShopCloudEvent) error {
		seen, seenOK = MessageMetaFromContext(ctx)
		return nil
	})

	ctx := ContextWithMessageMeta(context.Background(), MessageMeta{Partition: 1, Offset: 7})
	event := &cloudevents.ShopCloudEvent{ID: "evt-2", Type: "shopit.order.placed"}
	require.NoError(t, consumer.handleEvent(ctx, "shopit.orders.events", event))
	require.True(t, seenOK)
	assert.Equal(t, 1, seen.Partition)
	assert.Equal(t, int64(7), seen.Offset)
}
