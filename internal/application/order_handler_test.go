package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
)

func orderPlacedEvent(orderID string, lines []cloudevents.OrderLine) *cloudevents.ShopCloudEvent {
	factory := cloudevents.NewEventFactory(cloudevents.SourceOrderService)
	event := factory.CreateEvent(context.Background(), cloudevents.OrderPlaced, "order/"+orderID, cloudevents.OrderPlacedData{
		OrderID:  orderID,
		StoreID:  "STORE-001",
		Lines:    lines,
		PlacedAt: time.Now().UTC(),
	})
	// Consumed events carry their payload as generic decoded JSON
	event.Data = map[string]interface{}{
		"orderId": orderID,
		"storeId": "STORE-001",
		"lines":   lines,
	}
	return event
}

func TestHandleOrderPlaced(t *testing.T) {
	service, repo, publisher := newEligibilityService(t)
	handler := NewOrderEventHandler(service, newTestLogger())

	registerCouriers(t, repo, map[string]string{
		"COUR-BIKE": "bicycle",
		"COUR-VAN":  "van",
	})

	event := orderPlacedEvent("ORDER-001", []cloudevents.OrderLine{
		{SKU: "SKU-1", Size: "small", Quantity: 4},
	})

	err := handler.HandleOrderPlaced(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	published := publisher.events[0]
	assert.Equal(t, cloudevents.EligibilityEvaluated, published.Type)

	data, ok := published.Data.(cloudevents.EligibilityEvaluatedData)
	require.True(t, ok)
	assert.Equal(t, "ORDER-001", data.OrderID)
	assert.ElementsMatch(t, []string{"COUR-BIKE", "COUR-VAN"}, data.EligibleCourierIDs)
}

func TestHandleOrderPlacedInvalidLinesAreDropped(t *testing.T) {
	service, repo, publisher := newEligibilityService(t)
	handler := NewOrderEventHandler(service, newTestLogger())

	registerCouriers(t, repo, map[string]string{"COUR-VAN": "van"})

	event := orderPlacedEvent("ORDER-002", []cloudevents.OrderLine{
		{SKU: "SKU-1", Size: "small", Quantity: -5},
	})

	// The handler must not return an error for a malformed order; returning
	// one would block the partition on a poison message
	err := handler.HandleOrderPlaced(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, publisher.events)
}

func TestHandleOrderPlacedUndecodableData(t *testing.T) {
	service, _, publisher := newEligibilityService(t)
	handler := NewOrderEventHandler(service, newTestLogger())

	factory := cloudevents.NewEventFactory(cloudevents.SourceOrderService)
	event := factory.CreateEvent(context.Background(), cloudevents.OrderPlaced, "order/ORDER-003", nil)

	err := handler.HandleOrderPlaced(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, publisher.events)
}
