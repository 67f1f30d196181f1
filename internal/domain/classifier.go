package domain

import "fmt"

// minimumVehicle is a fixed mapping from shipment size to the smallest
// vehicle category able to carry a single unit of that size. It is kept
// independent of the capacity table so operators can tune limits without
// shifting the minimum tier; ValidateCapacityTables checks the two stay
// consistent.
var minimumVehicle = map[ShipmentSize]VehicleCategory{
	SizeSmall:      VehicleWalking,
	SizeMedium:     VehicleCar,
	SizeLarge:      VehicleSUV,
	SizeExtraLarge: VehicleVan,
}

// MinimumVehicleFor returns the smallest vehicle category that can carry a
// single unit of the given size
func MinimumVehicleFor(size ShipmentSize) (VehicleCategory, error) {
	minimum, ok := minimumVehicle[size]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidShipmentSize, size)
	}
	return minimum, nil
}

// MinimumVehicleForDemand returns the smallest vehicle category whose tier
// covers every size present in the demand. An all-zero demand needs no
// capacity, so walking is returned.
func MinimumVehicleForDemand(demand AggregatedDemand) (VehicleCategory, error) {
	minimum := VehicleWalking
	for size, quantity := range demand {
		if quantity == 0 {
			continue
		}
		candidate, err := MinimumVehicleFor(size)
		if err != nil {
			return "", err
		}
		if candidate.AtLeast(minimum) {
			minimum = candidate
		}
	}
	return minimum, nil
}

// CompatibleVehicles returns every vehicle category at or above the minimum
// for the given size, in ascending capability order. The minimum is always
// first and van is always last.
func CompatibleVehicles(size ShipmentSize) ([]VehicleCategory, error) {
	minimum, err := MinimumVehicleFor(size)
	if err != nil {
		return nil, err
	}

	var compatible []VehicleCategory
	for _, vehicle := range VehicleCategories() {
		if vehicle.AtLeast(minimum) {
			compatible = append(compatible, vehicle)
		}
	}
	return compatible, nil
}
