package domain

import "context"

// CourierRepository defines the persistence interface for Courier aggregates
type CourierRepository interface {
	// Save persists a courier, creating or replacing by courier ID
	Save(ctx context.Context, courier *Courier) error

	// FindByID returns a courier by ID, or nil if not found
	FindByID(ctx context.Context, courierID string) (*Courier, error)

	// FindByStore returns all couriers registered for a store
	FindByStore(ctx context.Context, storeID string) ([]*Courier, error)

	// FindActiveByStore returns the active couriers for a store
	FindActiveByStore(ctx context.Context, storeID string) ([]*Courier, error)

	// Delete removes a courier by ID
	Delete(ctx context.Context, courierID string) error
}
