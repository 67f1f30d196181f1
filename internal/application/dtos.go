package application

import "time"

// CourierDTO represents a courier in responses
type CourierDTO struct {
	CourierID string    `json:"courierId"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Vehicle   string    `json:"vehicle"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItemDTO represents one order line as received from upstream services
type OrderItemDTO struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// VehicleCheckDTO is the verdict for a single vehicle against an order
type VehicleCheckDTO struct {
	Vehicle  string         `json:"vehicle"`
	CanCarry bool           `json:"canCarry"`
	Demand   map[string]int `json:"demand"`
}

// ClassificationDTO resolves a shipment size to vehicle categories
type ClassificationDTO struct {
	Size               string   `json:"size"`
	MinimumVehicle     string   `json:"minimumVehicle"`
	CompatibleVehicles []string `json:"compatibleVehicles"`
}

// EligibilityResultDTO is the outcome of evaluating an order against the
// active couriers of a store
type EligibilityResultDTO struct {
	OrderID          string         `json:"orderId"`
	StoreID          string         `json:"storeId"`
	Demand           map[string]int `json:"demand"`
	MinimumVehicle   string         `json:"minimumVehicle"`
	EligibleCouriers []CourierDTO   `json:"eligibleCouriers"`
	EvaluatedAt      time.Time      `json:"evaluatedAt"`
}
