package domain

import (
	"errors"
	"fmt"
)

// UnlimitedCapacity marks a (vehicle, size) cell with no unit limit
const UnlimitedCapacity = -1

// ErrNegativeQuantity indicates an order item with a quantity below zero
var ErrNegativeQuantity = errors.New("order item quantity must not be negative")

// capacityTable holds the per-size carrying limits for every vehicle
// category. Every cell is defined: -1 means unlimited, 0 means the vehicle
// cannot carry that size at all, a positive value is a maximum unit count.
var capacityTable = map[VehicleCategory]map[ShipmentSize]int{
	VehicleWalking: {
		SizeSmall:      5,
		SizeMedium:     0,
		SizeLarge:      0,
		SizeExtraLarge: 0,
	},
	VehicleBicycle: {
		SizeSmall:      10,
		SizeMedium:     0,
		SizeLarge:      0,
		SizeExtraLarge: 0,
	},
	VehicleMotorcycle: {
		SizeSmall:      20,
		SizeMedium:     0,
		SizeLarge:      0,
		SizeExtraLarge: 0,
	},
	VehicleCar: {
		SizeSmall:      UnlimitedCapacity,
		SizeMedium:     3,
		SizeLarge:      0,
		SizeExtraLarge: 0,
	},
	VehicleSUV: {
		SizeSmall:      UnlimitedCapacity,
		SizeMedium:     6,
		SizeLarge:      2,
		SizeExtraLarge: 0,
	},
	VehicleVan: {
		SizeSmall:      UnlimitedCapacity,
		SizeMedium:     UnlimitedCapacity,
		SizeLarge:      10,
		SizeExtraLarge: 2,
	},
}

// CapacityFor returns the capacity limit for a vehicle and shipment size.
// Unknown values fail fast so a typo never turns into a permissive verdict.
func CapacityFor(vehicle VehicleCategory, size ShipmentSize) (int, error) {
	limits, ok := capacityTable[vehicle]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVehicleCategory, vehicle)
	}
	limit, ok := limits[size]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidShipmentSize, size)
	}
	return limit, nil
}

// OrderItem is a (size, quantity) pair from an order line
type OrderItem struct {
	Size     ShipmentSize `json:"size" bson:"size"`
	Quantity int          `json:"quantity" bson:"quantity"`
}

// AggregatedDemand maps every shipment size to its total required unit
// count. All four size keys are always present.
type AggregatedDemand map[ShipmentSize]int

// AggregateItems reduces order items into per-size unit counts. A negative
// quantity is a precondition violation and is never clamped; an unknown
// size fails fast.
func AggregateItems(items []OrderItem) (AggregatedDemand, error) {
	demand := AggregatedDemand{}
	for _, size := range shipmentSizes {
		demand[size] = 0
	}

	for _, item := range items {
		if !item.Size.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidShipmentSize, item.Size)
		}
		if item.Quantity < 0 {
			return nil, fmt.Errorf("%w: size %s has quantity %d", ErrNegativeQuantity, item.Size, item.Quantity)
		}
		demand[item.Size] += item.Quantity
	}

	return demand, nil
}

// Total returns the total unit count across all sizes
func (d AggregatedDemand) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// CanCarry reports whether the vehicle can carry the whole order. The first
// violated size constraint decides the verdict; an empty order is carryable
// by every vehicle.
func CanCarry(vehicle VehicleCategory, items []OrderItem) (bool, error) {
	if !vehicle.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidVehicleCategory, vehicle)
	}

	demand, err := AggregateItems(items)
	if err != nil {
		return false, err
	}

	return canCarryDemand(vehicle, demand), nil
}

// canCarryDemand evaluates an already-aggregated demand against a vehicle.
// Callers must pass a valid vehicle and a complete demand map.
func canCarryDemand(vehicle VehicleCategory, demand AggregatedDemand) bool {
	limits := capacityTable[vehicle]
	for _, size := range shipmentSizes {
		limit := limits[size]
		if limit == UnlimitedCapacity {
			continue
		}
		if limit == 0 && demand[size] > 0 {
			return false
		}
		if limit > 0 && demand[size] > limit {
			return false
		}
	}
	return true
}

// ValidateCapacityTables asserts the invariants of the static tables:
// every (vehicle, size) cell is defined and -1 or non-negative, capacity
// never decreases going up the vehicle ordering, and the minimum vehicle
// for each size can actually carry one unit of it. Run at startup so a
// bad table edit fails the process instead of producing wrong verdicts.
func ValidateCapacityTables() error {
	for _, vehicle := range VehicleCategories() {
		limits, ok := capacityTable[vehicle]
		if !ok {
			return fmt.Errorf("capacity table missing vehicle %q", vehicle)
		}
		for _, size := range shipmentSizes {
			limit, ok := limits[size]
			if !ok {
				return fmt.Errorf("capacity table missing cell (%s, %s)", vehicle, size)
			}
			if limit < UnlimitedCapacity {
				return fmt.Errorf("capacity table cell (%s, %s) has invalid limit %d", vehicle, size, limit)
			}
		}
	}

	// Monotonicity up the vehicle ordering
	vehicles := VehicleCategories()
	for i := 1; i < len(vehicles); i++ {
		prev, curr := vehicles[i-1], vehicles[i]
		for _, size := range shipmentSizes {
			prevLimit := capacityTable[prev][size]
			currLimit := capacityTable[curr][size]
			if currLimit == UnlimitedCapacity {
				continue
			}
			if prevLimit == UnlimitedCapacity || currLimit < prevLimit {
				return fmt.Errorf("capacity for size %s decreases from %s (%d) to %s (%d)",
					size, prev, prevLimit, curr, currLimit)
			}
		}
	}

	// The classifier's minimum vehicle must be able to carry one unit
	for _, size := range shipmentSizes {
		minimum, err := MinimumVehicleFor(size)
		if err != nil {
			return err
		}
		if capacityTable[minimum][size] == 0 {
			return fmt.Errorf("minimum vehicle %s cannot carry size %s", minimum, size)
		}
	}

	return nil
}
