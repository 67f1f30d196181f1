package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for ShopIt dispatch domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new ShopCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *ShopCloudEvent {
	event := &ShopCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	correlationID string,
) *ShopCloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.CorrelationID = correlationID
	return event
}

// CreateCourierRegisteredEvent creates a CourierRegistered event
func (f *EventFactory) CreateCourierRegisteredEvent(
	ctx context.Context,
	courierID string,
	storeID string,
	name string,
	vehicle string,
) *ShopCloudEvent {
	data := CourierRegisteredData{
		CourierID: courierID,
		StoreID:   storeID,
		Name:      name,
		Vehicle:   vehicle,
	}
	event := f.CreateEvent(ctx, CourierRegistered, "courier/"+courierID, data)
	event.StoreID = storeID
	return event
}

// CreateCourierVehicleChangedEvent creates a CourierVehicleChanged event
func (f *EventFactory) CreateCourierVehicleChangedEvent(
	ctx context.Context,
	courierID string,
	fromVehicle string,
	toVehicle string,
) *ShopCloudEvent {
	data := CourierVehicleChangedData{
		CourierID:   courierID,
		FromVehicle: fromVehicle,
		ToVehicle:   toVehicle,
	}
	return f.CreateEvent(ctx, CourierVehicleChanged, "courier/"+courierID, data)
}

// CreateCourierStatusChangedEvent creates a CourierStatusChanged event
func (f *EventFactory) CreateCourierStatusChangedEvent(
	ctx context.Context,
	courierID string,
	fromStatus string,
	toStatus string,
) *ShopCloudEvent {
	data := CourierStatusChangedData{
		CourierID:  courierID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
	}
	return f.CreateEvent(ctx, CourierStatusChanged, "courier/"+courierID, data)
}

// CreateEligibilityEvaluatedEvent creates an EligibilityEvaluated event
func (f *EventFactory) CreateEligibilityEvaluatedEvent(
	ctx context.Context,
	orderID string,
	storeID string,
	demand map[string]int,
	minimumVehicle string,
	eligibleCourierIDs []string,
) *ShopCloudEvent {
	data := EligibilityEvaluatedData{
		OrderID:            orderID,
		StoreID:            storeID,
		Demand:             demand,
		MinimumVehicle:     minimumVehicle,
		EligibleCourierIDs: eligibleCourierIDs,
		EvaluatedAt:        time.Now().UTC(),
	}
	event := f.CreateEvent(ctx, EligibilityEvaluated, "order/"+orderID, data)
	event.OrderID = orderID
	event.StoreID = storeID
	return event
}
