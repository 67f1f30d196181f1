package cloudevents

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType constants for ShopIt dispatch domain events
const (
	// Order events
	OrderPlaced    = "shopit.order.placed"
	OrderCancelled = "shopit.order.cancelled"

	// Courier events
	CourierRegistered     = "shopit.courier.registered"
	CourierVehicleChanged = "shopit.courier.vehicle-changed"
	CourierStatusChanged  = "shopit.courier.status-changed"

	// Dispatch events
	EligibilityEvaluated = "shopit.dispatch.eligibility-evaluated"
)

// Source constants for event sources
const (
	SourceOrderService    = "/shopit/order-service"
	SourceCourierCapacity = "/shopit/courier-capacity-service"
)

// ShopCloudEvent represents a CloudEvents v1.0 compliant event for ShopIt
type ShopCloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	// ShopIt-specific extensions
	CorrelationID string `json:"shopitcorrelationid,omitempty"`
	StoreID       string `json:"shopitstoreid,omitempty"`
	OrderID       string `json:"shopitorderid,omitempty"`

	// W3C Trace Context extensions
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// DecodeData unmarshals the event payload into the given target. Consumed
// events carry Data as generic decoded JSON, so the payload is round-tripped
// through encoding/json to reach the typed struct.
func DecodeData(event *ShopCloudEvent, target interface{}) error {
	if event == nil || event.Data == nil {
		return fmt.Errorf("event has no data payload")
	}

	raw, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to encode event data: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode event data: %w", err)
	}
	return nil
}

// OrderLine represents a line item in a placed order
type OrderLine struct {
	SKU      string `json:"sku"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// OrderPlacedData represents the data payload for OrderPlaced event
type OrderPlacedData struct {
	OrderID    string      `json:"orderId"`
	StoreID    string      `json:"storeId"`
	CustomerID string      `json:"customerId"`
	Lines      []OrderLine `json:"lines"`
	PlacedAt   time.Time   `json:"placedAt"`
}

// CourierRegisteredData represents the data payload for CourierRegistered event
type CourierRegisteredData struct {
	CourierID string `json:"courierId"`
	StoreID   string `json:"storeId"`
	Name      string `json:"name"`
	Vehicle   string `json:"vehicle"`
}

// CourierVehicleChangedData represents the data payload for CourierVehicleChanged event
type CourierVehicleChangedData struct {
	CourierID   string `json:"courierId"`
	FromVehicle string `json:"fromVehicle"`
	ToVehicle   string `json:"toVehicle"`
}

// CourierStatusChangedData represents the data payload for CourierStatusChanged event
type CourierStatusChangedData struct {
	CourierID  string `json:"courierId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
}

// EligibilityEvaluatedData represents the data payload for EligibilityEvaluated event
type EligibilityEvaluatedData struct {
	OrderID            string         `json:"orderId"`
	StoreID            string         `json:"storeId"`
	Demand             map[string]int `json:"demand"`
	MinimumVehicle     string         `json:"minimumVehicle,omitempty"`
	EligibleCourierIDs []string       `json:"eligibleCourierIds"`
	EvaluatedAt        time.Time      `json:"evaluatedAt"`
}
