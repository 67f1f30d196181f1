package domain

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidVehicleCategory = errors.New("invalid vehicle category")
	ErrInvalidShipmentSize    = errors.New("invalid shipment size")
)

// VehicleCategory represents the kind of vehicle a courier operates.
// Categories form a strict capability ordering: a category further down
// the list can carry at least as much as every category above it.
type VehicleCategory string

const (
	VehicleWalking    VehicleCategory = "walking"
	VehicleBicycle    VehicleCategory = "bicycle"
	VehicleMotorcycle VehicleCategory = "motorcycle"
	VehicleCar        VehicleCategory = "car"
	VehicleSUV        VehicleCategory = "suv"
	VehicleVan        VehicleCategory = "van"
)

// vehicleOrder maps each category to its rank in the capability ordering
var vehicleOrder = map[VehicleCategory]int{
	VehicleWalking:    0,
	VehicleBicycle:    1,
	VehicleMotorcycle: 2,
	VehicleCar:        3,
	VehicleSUV:        4,
	VehicleVan:        5,
}

// VehicleCategories returns all categories in ascending capability order
func VehicleCategories() []VehicleCategory {
	return []VehicleCategory{
		VehicleWalking,
		VehicleBicycle,
		VehicleMotorcycle,
		VehicleCar,
		VehicleSUV,
		VehicleVan,
	}
}

// ParseVehicleCategory validates a raw string as a vehicle category
func ParseVehicleCategory(raw string) (VehicleCategory, error) {
	category := VehicleCategory(raw)
	if _, ok := vehicleOrder[category]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleCategory, raw)
	}
	return category, nil
}

// IsValid reports whether the category is one of the known categories
func (v VehicleCategory) IsValid() bool {
	_, ok := vehicleOrder[v]
	return ok
}

// Rank returns the category's position in the capability ordering
func (v VehicleCategory) Rank() int {
	return vehicleOrder[v]
}

// AtLeast reports whether v is at or above other in the capability ordering
func (v VehicleCategory) AtLeast(other VehicleCategory) bool {
	return vehicleOrder[v] >= vehicleOrder[other]
}

func (v VehicleCategory) String() string {
	return string(v)
}

// ShipmentSize is the size class assigned to an order line item
type ShipmentSize string

const (
	SizeSmall      ShipmentSize = "small"
	SizeMedium     ShipmentSize = "medium"
	SizeLarge      ShipmentSize = "large"
	SizeExtraLarge ShipmentSize = "extra_large"
)

// shipmentSizes is the canonical evaluation order, smallest first
var shipmentSizes = []ShipmentSize{
	SizeSmall,
	SizeMedium,
	SizeLarge,
	SizeExtraLarge,
}

// ShipmentSizes returns all sizes from smallest to largest
func ShipmentSizes() []ShipmentSize {
	sizes := make([]ShipmentSize, len(shipmentSizes))
	copy(sizes, shipmentSizes)
	return sizes
}

// ParseShipmentSize validates a raw string as a shipment size
func ParseShipmentSize(raw string) (ShipmentSize, error) {
	size := ShipmentSize(raw)
	if !size.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShipmentSize, raw)
	}
	return size, nil
}

// IsValid reports whether the size is one of the known size classes
func (s ShipmentSize) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

func (s ShipmentSize) String() string {
	return string(s)
}
