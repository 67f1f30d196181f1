package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// CourierRegisteredEvent is published when a courier is registered
type CourierRegisteredEvent struct {
	CourierID    string    `json:"courierId"`
	StoreID      string    `json:"storeId"`
	Name         string    `json:"name"`
	Vehicle      string    `json:"vehicle"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (e *CourierRegisteredEvent) EventType() string     { return "shopit.courier.registered" }
func (e *CourierRegisteredEvent) OccurredAt() time.Time { return e.RegisteredAt }

// CourierVehicleChangedEvent is published when a courier changes vehicle
type CourierVehicleChangedEvent struct {
	CourierID   string    `json:"courierId"`
	FromVehicle string    `json:"fromVehicle"`
	ToVehicle   string    `json:"toVehicle"`
	ChangedAt   time.Time `json:"changedAt"`
}

func (e *CourierVehicleChangedEvent) EventType() string     { return "shopit.courier.vehicle-changed" }
func (e *CourierVehicleChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// CourierStatusChangedEvent is published when a courier's status changes
type CourierStatusChangedEvent struct {
	CourierID  string    `json:"courierId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ChangedAt  time.Time `json:"changedAt"`
}

func (e *CourierStatusChangedEvent) EventType() string     { return "shopit.courier.status-changed" }
func (e *CourierStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
