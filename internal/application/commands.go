package application

// RegisterCourierCommand registers a new courier for a store
type RegisterCourierCommand struct {
	CourierID string
	StoreID   string
	Name      string
	Vehicle   string
}

// ChangeVehicleCommand switches a courier's declared vehicle category
type ChangeVehicleCommand struct {
	CourierID string
	Vehicle   string
}

// SetCourierStatusCommand changes a courier's availability status
type SetCourierStatusCommand struct {
	CourierID string
	Status    string
}

// EvaluateOrderCommand computes the eligible courier set for an order
type EvaluateOrderCommand struct {
	OrderID string
	StoreID string
	Items   []OrderItemDTO
}

// GetCourierQuery retrieves a courier by ID
type GetCourierQuery struct {
	CourierID string
}

// ListCouriersQuery retrieves couriers registered for a store
type ListCouriersQuery struct {
	StoreID    string
	ActiveOnly bool
}

// CheckVehicleQuery asks whether a vehicle category can carry an order
type CheckVehicleQuery struct {
	Vehicle string
	Items   []OrderItemDTO
}

// ClassifyShipmentQuery resolves the minimum and compatible vehicle
// categories for a shipment size
type ClassifyShipmentQuery struct {
	Size string
}
