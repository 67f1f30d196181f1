package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-platform/courier-capacity-service/internal/domain"
	"github.com/shopit-platform/courier-capacity-service/internal/infrastructure/mongodb"
	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
	shopittesting "github.com/shopit-platform/courier-capacity-service/pkg/testing"
)

func setupTestRepository(t *testing.T) (*mongodb.CourierRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := shopittesting.NewMongoDBContainer(ctx)
	require.NoError(t, err)

	client, err := mongoContainer.GetClient(ctx)
	require.NoError(t, err)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceCourierCapacity)

	db := client.Database("test_courier_capacity_db")
	repo := mongodb.NewCourierRepository(db, eventFactory, metrics.New(metrics.DefaultConfig("test")))

	cleanup := func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Failed to disconnect MongoDB client: %v", err)
		}
		if err := mongoContainer.Close(ctx); err != nil {
			t.Logf("Failed to close MongoDB container: %v", err)
		}
	}

	return repo, cleanup
}

func createTestCourier(t *testing.T, courierID, storeID string, vehicle domain.VehicleCategory) *domain.Courier {
	t.Helper()
	courier, err := domain.NewCourier(courierID, storeID, "Courier "+courierID, vehicle)
	require.NoError(t, err)
	return courier
}

func TestCourierRepository_Save(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Save new courier", func(t *testing.T) {
		courier := createTestCourier(t, "COUR-001", "STORE-001", domain.VehicleBicycle)

		err := repo.Save(ctx, courier)
		assert.NoError(t, err)

		// Domain events are drained into the outbox by the transaction
		assert.Empty(t, courier.GetDomainEvents())

		found, err := repo.FindByID(ctx, "COUR-001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "COUR-001", found.CourierID)
		assert.Equal(t, domain.VehicleBicycle, found.Vehicle)
		assert.Equal(t, domain.CourierStatusActive, found.Status)
	})

	t.Run("Update existing courier (upsert)", func(t *testing.T) {
		courier := createTestCourier(t, "COUR-002", "STORE-001", domain.VehicleCar)

		err := repo.Save(ctx, courier)
		require.NoError(t, err)

		require.NoError(t, courier.ChangeVehicle(domain.VehicleVan))
		err = repo.Save(ctx, courier)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, "COUR-002")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.VehicleVan, found.Vehicle)
	})
}

func TestCourierRepository_OutboxStaging(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	courier := createTestCourier(t, "COUR-OUTBOX", "STORE-001", domain.VehicleMotorcycle)
	require.NoError(t, repo.Save(ctx, courier))

	require.NoError(t, courier.ChangeVehicle(domain.VehicleSUV))
	require.NoError(t, repo.Save(ctx, courier))

	// Registration and vehicle change must both be staged for publishing
	unpublished, err := repo.GetOutboxRepository().FindUnpublished(ctx, 10)
	require.NoError(t, err)

	var eventTypes []string
	for _, event := range unpublished {
		if event.AggregateID == "COUR-OUTBOX" {
			eventTypes = append(eventTypes, event.EventType)
		}
	}
	assert.ElementsMatch(t, []string{
		cloudevents.CourierRegistered,
		cloudevents.CourierVehicleChanged,
	}, eventTypes)
}

func TestCourierRepository_FindByID(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Find existing courier", func(t *testing.T) {
		courier := createTestCourier(t, "COUR-003", "STORE-001", domain.VehicleSUV)
		require.NoError(t, repo.Save(ctx, courier))

		found, err := repo.FindByID(ctx, "COUR-003")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "COUR-003", found.CourierID)
	})

	t.Run("Find non-existent courier", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "COUR-NONEXISTENT")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestCourierRepository_FindByStore(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storeID := "STORE-FIND"
	vehicles := []domain.VehicleCategory{domain.VehicleWalking, domain.VehicleCar, domain.VehicleVan}
	for i, vehicle := range vehicles {
		courier := createTestCourier(t, "COUR-STORE-"+string(rune('A'+i)), storeID, vehicle)
		require.NoError(t, repo.Save(ctx, courier))
	}

	t.Run("Find all couriers for store", func(t *testing.T) {
		couriers, err := repo.FindByStore(ctx, storeID)
		assert.NoError(t, err)
		assert.Len(t, couriers, 3)

		for _, courier := range couriers {
			assert.Equal(t, storeID, courier.StoreID)
		}
	})

	t.Run("Find for non-existent store", func(t *testing.T) {
		couriers, err := repo.FindByStore(ctx, "STORE-NONEXISTENT")
		assert.NoError(t, err)
		assert.Empty(t, couriers)
	})
}

func TestCourierRepository_FindActiveByStore(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storeID := "STORE-ACTIVE"

	active := createTestCourier(t, "COUR-ACTIVE", storeID, domain.VehicleVan)
	require.NoError(t, repo.Save(ctx, active))

	suspended := createTestCourier(t, "COUR-SUSPENDED", storeID, domain.VehicleVan)
	require.NoError(t, suspended.Suspend())
	require.NoError(t, repo.Save(ctx, suspended))

	offline := createTestCourier(t, "COUR-OFFLINE", storeID, domain.VehicleVan)
	require.NoError(t, offline.GoOffline())
	require.NoError(t, repo.Save(ctx, offline))

	couriers, err := repo.FindActiveByStore(ctx, storeID)
	assert.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, "COUR-ACTIVE", couriers[0].CourierID)
}

func TestCourierRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Delete existing courier", func(t *testing.T) {
		courier := createTestCourier(t, "COUR-DELETE", "STORE-001", domain.VehicleWalking)
		require.NoError(t, repo.Save(ctx, courier))

		err := repo.Delete(ctx, "COUR-DELETE")
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, "COUR-DELETE")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Delete non-existent courier", func(t *testing.T) {
		err := repo.Delete(ctx, "COUR-NONEXISTENT")
		assert.NoError(t, err)
	})
}

func TestCourierRepository_PersistedDocumentShape(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	courier := createTestCourier(t, "COUR-SHAPE", "STORE-001", domain.VehicleCar)
	require.NoError(t, repo.Save(ctx, courier))

	found, err := repo.FindByID(ctx, "COUR-SHAPE")
	require.NoError(t, err)
	require.NotNil(t, found)

	// Round-tripped aggregates must not resurrect domain events
	assert.Empty(t, found.GetDomainEvents())
	assert.False(t, found.CreatedAt.IsZero())
	assert.False(t, found.UpdatedAt.IsZero())
}
