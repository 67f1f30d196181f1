package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopit-platform/courier-capacity-service/internal/domain"
)

// CourierRepository is an in-memory implementation of
// domain.CourierRepository for tests and local development
type CourierRepository struct {
	mu       sync.RWMutex
	couriers map[string]*domain.Courier
}

// NewCourierRepository creates an empty in-memory repository
func NewCourierRepository() *CourierRepository {
	return &CourierRepository{
		couriers: make(map[string]*domain.Courier),
	}
}

// Save persists a courier, creating or replacing by courier ID. Domain
// events are cleared to mirror the transactional outbox behavior of the
// MongoDB repository.
func (r *CourierRepository) Save(ctx context.Context, courier *domain.Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *courier
	stored.DomainEvents = nil
	r.couriers[courier.CourierID] = &stored

	courier.ClearDomainEvents()
	return nil
}

// FindByID returns a courier by ID, or nil if not found
func (r *CourierRepository) FindByID(ctx context.Context, courierID string) (*domain.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courier, ok := r.couriers[courierID]
	if !ok {
		return nil, nil
	}
	copied := *courier
	return &copied, nil
}

// FindByStore returns all couriers registered for a store
func (r *CourierRepository) FindByStore(ctx context.Context, storeID string) ([]*domain.Courier, error) {
	return r.find(storeID, false)
}

// FindActiveByStore returns the active couriers for a store
func (r *CourierRepository) FindActiveByStore(ctx context.Context, storeID string) ([]*domain.Courier, error) {
	return r.find(storeID, true)
}

func (r *CourierRepository) find(storeID string, activeOnly bool) ([]*domain.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Courier
	for _, courier := range r.couriers {
		if courier.StoreID != storeID {
			continue
		}
		if activeOnly && !courier.IsActive() {
			continue
		}
		copied := *courier
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CourierID < matched[j].CourierID
	})
	return matched, nil
}

// Delete removes a courier by ID
func (r *CourierRepository) Delete(ctx context.Context, courierID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.couriers, courierID)
	return nil
}
