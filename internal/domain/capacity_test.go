package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCapacityTableCompleteness verifies every (vehicle, size) cell is
// defined and is -1 or a non-negative integer
func TestCapacityTableCompleteness(t *testing.T) {
	for _, vehicle := range VehicleCategories() {
		for _, size := range ShipmentSizes() {
			limit, err := CapacityFor(vehicle, size)
			require.NoError(t, err, "cell (%s, %s) must be defined", vehicle, size)
			assert.GreaterOrEqual(t, limit, UnlimitedCapacity,
				"cell (%s, %s) must be -1 or non-negative", vehicle, size)
		}
	}
}

// TestCapacityMonotonicity verifies capacity never decreases going up the
// vehicle ordering
func TestCapacityMonotonicity(t *testing.T) {
	vehicles := VehicleCategories()
	for i := 1; i < len(vehicles); i++ {
		prev, curr := vehicles[i-1], vehicles[i]
		for _, size := range ShipmentSizes() {
			prevLimit, err := CapacityFor(prev, size)
			require.NoError(t, err)
			currLimit, err := CapacityFor(curr, size)
			require.NoError(t, err)

			if currLimit == UnlimitedCapacity {
				continue
			}
			assert.NotEqual(t, UnlimitedCapacity, prevLimit,
				"capacity for %s must not drop from unlimited on %s to %d on %s", size, prev, currLimit, curr)
			assert.GreaterOrEqual(t, currLimit, prevLimit,
				"capacity for %s must not decrease from %s to %s", size, prev, curr)
		}
	}
}

func TestValidateCapacityTables(t *testing.T) {
	assert.NoError(t, ValidateCapacityTables())
}

func TestCapacityForInvalidInputs(t *testing.T) {
	_, err := CapacityFor(VehicleCategory("skateboard"), SizeSmall)
	assert.ErrorIs(t, err, ErrInvalidVehicleCategory)

	_, err = CapacityFor(VehicleCar, ShipmentSize("gigantic"))
	assert.ErrorIs(t, err, ErrInvalidShipmentSize)
}

func TestAggregateItems(t *testing.T) {
	tests := []struct {
		name        string
		items       []OrderItem
		expected    AggregatedDemand
		expectError error
	}{
		{
			name:  "Empty order yields all-zero demand",
			items: []OrderItem{},
			expected: AggregatedDemand{
				SizeSmall: 0, SizeMedium: 0, SizeLarge: 0, SizeExtraLarge: 0,
			},
		},
		{
			name: "Duplicate sizes are summed",
			items: []OrderItem{
				{Size: SizeSmall, Quantity: 2},
				{Size: SizeSmall, Quantity: 3},
				{Size: SizeLarge, Quantity: 1},
			},
			expected: AggregatedDemand{
				SizeSmall: 5, SizeMedium: 0, SizeLarge: 1, SizeExtraLarge: 0,
			},
		},
		{
			name: "Zero quantity is allowed",
			items: []OrderItem{
				{Size: SizeMedium, Quantity: 0},
			},
			expected: AggregatedDemand{
				SizeSmall: 0, SizeMedium: 0, SizeLarge: 0, SizeExtraLarge: 0,
			},
		},
		{
			name: "Negative quantity is rejected, never clamped",
			items: []OrderItem{
				{Size: SizeSmall, Quantity: -1},
			},
			expectError: ErrNegativeQuantity,
		},
		{
			name: "Unknown size is rejected",
			items: []OrderItem{
				{Size: ShipmentSize("huge"), Quantity: 1},
			},
			expectError: ErrInvalidShipmentSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			demand, err := AggregateItems(tt.items)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, demand)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, demand)
				// Every size key must always be present
				assert.Len(t, demand, len(ShipmentSizes()))
			}
		})
	}
}

func TestCanCarry(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  VehicleCategory
		items    []OrderItem
		expected bool
	}{
		{
			name:     "Walking carries five small items",
			vehicle:  VehicleWalking,
			items:    []OrderItem{{Size: SizeSmall, Quantity: 5}},
			expected: true,
		},
		{
			name:     "Walking cannot carry six small items",
			vehicle:  VehicleWalking,
			items:    []OrderItem{{Size: SizeSmall, Quantity: 6}},
			expected: false,
		},
		{
			name:    "Car carries unlimited small plus medium at limit",
			vehicle: VehicleCar,
			items: []OrderItem{
				{Size: SizeSmall, Quantity: 100},
				{Size: SizeMedium, Quantity: 3},
			},
			expected: true,
		},
		{
			name:     "Car cannot carry a single large item",
			vehicle:  VehicleCar,
			items:    []OrderItem{{Size: SizeLarge, Quantity: 1}},
			expected: false,
		},
		{
			name:     "Van carries two extra large items",
			vehicle:  VehicleVan,
			items:    []OrderItem{{Size: SizeExtraLarge, Quantity: 2}},
			expected: true,
		},
		{
			name:     "Van cannot carry three extra large items",
			vehicle:  VehicleVan,
			items:    []OrderItem{{Size: SizeExtraLarge, Quantity: 3}},
			expected: false,
		},
		{
			name:    "First violated size decides the verdict",
			vehicle: VehicleBicycle,
			items: []OrderItem{
				{Size: SizeSmall, Quantity: 11},
				{Size: SizeExtraLarge, Quantity: 1},
			},
			expected: false,
		},
		{
			name:    "Split quantities sum across duplicate sizes",
			vehicle: VehicleSUV,
			items: []OrderItem{
				{Size: SizeMedium, Quantity: 4},
				{Size: SizeMedium, Quantity: 3},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CanCarry(tt.vehicle, tt.items)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestCanCarryEmptyOrder verifies the vacuous-satisfaction policy: an order
// with no items is carryable by every vehicle
func TestCanCarryEmptyOrder(t *testing.T) {
	for _, vehicle := range VehicleCategories() {
		result, err := CanCarry(vehicle, nil)
		require.NoError(t, err)
		assert.True(t, result, "empty order must be carryable by %s", vehicle)
	}
}

// TestCanCarryIdempotent verifies repeated calls with identical arguments
// yield identical results
func TestCanCarryIdempotent(t *testing.T) {
	items := []OrderItem{
		{Size: SizeSmall, Quantity: 7},
		{Size: SizeMedium, Quantity: 2},
	}

	first, err := CanCarry(VehicleCar, items)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := CanCarry(VehicleCar, items)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCanCarryInvalidInputs(t *testing.T) {
	_, err := CanCarry(VehicleCategory("rocket"), nil)
	assert.ErrorIs(t, err, ErrInvalidVehicleCategory)

	_, err = CanCarry(VehicleVan, []OrderItem{{Size: SizeSmall, Quantity: -3}})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = CanCarry(VehicleVan, []OrderItem{{Size: ShipmentSize("tiny"), Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidShipmentSize)
}

func TestAggregatedDemandTotal(t *testing.T) {
	demand, err := AggregateItems([]OrderItem{
		{Size: SizeSmall, Quantity: 3},
		{Size: SizeLarge, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, demand.Total())
}
