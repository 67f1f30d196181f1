package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrCourierNameRequired = errors.New("courier name is required")
	ErrCourierSuspended    = errors.New("courier is suspended")
	ErrSameVehicle         = errors.New("courier already operates this vehicle")
)

// CourierStatus represents the availability of a courier
type CourierStatus string

const (
	CourierStatusActive    CourierStatus = "active"
	CourierStatusSuspended CourierStatus = "suspended"
	CourierStatusOffline   CourierStatus = "offline"
)

// Courier is the aggregate root for the courier registry bounded context.
// Each courier declares a vehicle category which determines the orders
// they are eligible to carry.
type Courier struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CourierID    string             `bson:"courierId"`
	StoreID      string             `bson:"storeId"`
	Name         string             `bson:"name"`
	Vehicle      VehicleCategory    `bson:"vehicle"`
	Status       CourierStatus      `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-"`
}

// NewCourier creates a new Courier aggregate with a validated vehicle
func NewCourier(courierID, storeID, name string, vehicle VehicleCategory) (*Courier, error) {
	if name == "" {
		return nil, ErrCourierNameRequired
	}
	if !vehicle.IsValid() {
		return nil, ErrInvalidVehicleCategory
	}

	now := time.Now()

	courier := &Courier{
		CourierID:    courierID,
		StoreID:      storeID,
		Name:         name,
		Vehicle:      vehicle,
		Status:       CourierStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}

	courier.AddDomainEvent(&CourierRegisteredEvent{
		CourierID:    courierID,
		StoreID:      storeID,
		Name:         name,
		Vehicle:      string(vehicle),
		RegisteredAt: now,
	})

	return courier, nil
}

// ChangeVehicle switches the courier's declared vehicle category. Suspended
// couriers must be reactivated before changing vehicles.
func (c *Courier) ChangeVehicle(vehicle VehicleCategory) error {
	if c.Status == CourierStatusSuspended {
		return ErrCourierSuspended
	}
	if !vehicle.IsValid() {
		return ErrInvalidVehicleCategory
	}
	if c.Vehicle == vehicle {
		return ErrSameVehicle
	}

	now := time.Now()
	from := c.Vehicle
	c.Vehicle = vehicle
	c.UpdatedAt = now

	c.AddDomainEvent(&CourierVehicleChangedEvent{
		CourierID:   c.CourierID,
		FromVehicle: string(from),
		ToVehicle:   string(vehicle),
		ChangedAt:   now,
	})

	return nil
}

// Activate marks the courier as available for dispatch
func (c *Courier) Activate() error {
	return c.setStatus(CourierStatusActive)
}

// Suspend takes the courier out of dispatch until reactivated
func (c *Courier) Suspend() error {
	return c.setStatus(CourierStatusSuspended)
}

// GoOffline marks the courier as temporarily unavailable
func (c *Courier) GoOffline() error {
	return c.setStatus(CourierStatusOffline)
}

func (c *Courier) setStatus(status CourierStatus) error {
	if c.Status == status {
		return nil
	}

	now := time.Now()
	from := c.Status
	c.Status = status
	c.UpdatedAt = now

	c.AddDomainEvent(&CourierStatusChangedEvent{
		CourierID:  c.CourierID,
		FromStatus: string(from),
		ToStatus:   string(status),
		ChangedAt:  now,
	})

	return nil
}

// IsActive reports whether the courier can be considered for dispatch
func (c *Courier) IsActive() bool {
	return c.Status == CourierStatusActive
}

// CanHandleOrder reports whether this courier's vehicle can carry the order
func (c *Courier) CanHandleOrder(items []OrderItem) (bool, error) {
	return CanCarry(c.Vehicle, items)
}

// AddDomainEvent adds a domain event
func (c *Courier) AddDomainEvent(event DomainEvent) {
	c.DomainEvents = append(c.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (c *Courier) ClearDomainEvents() {
	c.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (c *Courier) GetDomainEvents() []DomainEvent {
	return c.DomainEvents
}
