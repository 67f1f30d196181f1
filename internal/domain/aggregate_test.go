package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	tests := []struct {
		name        string
		courierID   string
		courierName string
		vehicle     VehicleCategory
		expectError error
	}{
		{
			name:        "Valid courier registration",
			courierID:   "COUR-001",
			courierName: "Nika",
			vehicle:     VehicleBicycle,
			expectError: nil,
		},
		{
			name:        "Missing name",
			courierID:   "COUR-002",
			courierName: "",
			vehicle:     VehicleCar,
			expectError: ErrCourierNameRequired,
		},
		{
			name:        "Unknown vehicle",
			courierID:   "COUR-003",
			courierName: "Sandro",
			vehicle:     VehicleCategory("tractor"),
			expectError: ErrInvalidVehicleCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courier, err := NewCourier(tt.courierID, "STORE-001", tt.courierName, tt.vehicle)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, courier)
			} else {
				require.NoError(t, err)
				require.NotNil(t, courier)
				assert.Equal(t, tt.courierID, courier.CourierID)
				assert.Equal(t, "STORE-001", courier.StoreID)
				assert.Equal(t, tt.vehicle, courier.Vehicle)
				assert.Equal(t, CourierStatusActive, courier.Status)
				assert.NotZero(t, courier.CreatedAt)

				events := courier.GetDomainEvents()
				assert.Len(t, events, 1)
				event, ok := events[0].(*CourierRegisteredEvent)
				assert.True(t, ok)
				assert.Equal(t, tt.courierID, event.CourierID)
				assert.Equal(t, string(tt.vehicle), event.Vehicle)
			}
		})
	}
}

func TestCourierChangeVehicle(t *testing.T) {
	tests := []struct {
		name        string
		toVehicle   VehicleCategory
		expectError error
	}{
		{name: "Upgrade to van", toVehicle: VehicleVan},
		{name: "Downgrade to walking", toVehicle: VehicleWalking},
		{name: "Same vehicle rejected", toVehicle: VehicleBicycle, expectError: ErrSameVehicle},
		{name: "Unknown vehicle rejected", toVehicle: VehicleCategory("boat"), expectError: ErrInvalidVehicleCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courier, err := NewCourier("COUR-001", "STORE-001", "Nika", VehicleBicycle)
			require.NoError(t, err)
			courier.ClearDomainEvents()

			err = courier.ChangeVehicle(tt.toVehicle)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, VehicleBicycle, courier.Vehicle)
				assert.Empty(t, courier.GetDomainEvents())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.toVehicle, courier.Vehicle)

				events := courier.GetDomainEvents()
				require.Len(t, events, 1)
				event, ok := events[0].(*CourierVehicleChangedEvent)
				require.True(t, ok)
				assert.Equal(t, "bicycle", event.FromVehicle)
				assert.Equal(t, string(tt.toVehicle), event.ToVehicle)
			}
		})
	}
}

func TestSuspendedCourierCannotChangeVehicle(t *testing.T) {
	courier, err := NewCourier("COUR-001", "STORE-001", "Nika", VehicleBicycle)
	require.NoError(t, err)
	require.NoError(t, courier.Suspend())
	courier.ClearDomainEvents()

	err = courier.ChangeVehicle(VehicleVan)
	assert.ErrorIs(t, err, ErrCourierSuspended)
	assert.Equal(t, VehicleBicycle, courier.Vehicle)
	assert.Empty(t, courier.GetDomainEvents())
}

func TestCourierStatusTransitions(t *testing.T) {
	courier, err := NewCourier("COUR-001", "STORE-001", "Nika", VehicleCar)
	require.NoError(t, err)
	courier.ClearDomainEvents()

	require.NoError(t, courier.Suspend())
	assert.Equal(t, CourierStatusSuspended, courier.Status)
	assert.False(t, courier.IsActive())

	require.NoError(t, courier.Activate())
	assert.Equal(t, CourierStatusActive, courier.Status)
	assert.True(t, courier.IsActive())

	require.NoError(t, courier.GoOffline())
	assert.Equal(t, CourierStatusOffline, courier.Status)

	events := courier.GetDomainEvents()
	require.Len(t, events, 3)
	for _, e := range events {
		_, ok := e.(*CourierStatusChangedEvent)
		assert.True(t, ok)
	}

	// Setting the same status again is a no-op and emits no event
	courier.ClearDomainEvents()
	require.NoError(t, courier.GoOffline())
	assert.Empty(t, courier.GetDomainEvents())
}

func TestCourierCanHandleOrder(t *testing.T) {
	courier, err := NewCourier("COUR-001", "STORE-001", "Nika", VehicleMotorcycle)
	require.NoError(t, err)

	ok, err := courier.CanHandleOrder([]OrderItem{{Size: SizeSmall, Quantity: 20}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = courier.CanHandleOrder([]OrderItem{{Size: SizeMedium, Quantity: 1}})
	require.NoError(t, err)
	assert.False(t, ok)
}
