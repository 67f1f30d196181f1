package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-platform/courier-capacity-service/internal/infrastructure/memory"
	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/errors"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []*cloudevents.ShopCloudEvent
	topics []string
	err    error
}

func (p *capturingPublisher) PublishEvent(ctx context.Context, topic string, event *cloudevents.ShopCloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func newEligibilityService(t *testing.T) (*EligibilityApplicationService, *memory.CourierRepository, *capturingPublisher) {
	t.Helper()
	repo := memory.NewCourierRepository()
	publisher := &capturingPublisher{}
	factory := cloudevents.NewEventFactory(cloudevents.SourceCourierCapacity)
	service := NewEligibilityApplicationService(
		repo, publisher, factory, newTestLogger(), metrics.New(metrics.DefaultConfig("test")))
	return service, repo, publisher
}

func registerCouriers(t *testing.T, repo *memory.CourierRepository, specs map[string]string) {
	t.Helper()
	courierService := NewCourierApplicationService(repo, newTestLogger(), metrics.New(metrics.DefaultConfig("test")))
	for id, vehicle := range specs {
		_, err := courierService.RegisterCourier(context.Background(), RegisterCourierCommand{
			CourierID: id, StoreID: "STORE-001", Name: "Courier " + id, Vehicle: vehicle,
		})
		require.NoError(t, err)
	}
}

func TestCheckVehicle(t *testing.T) {
	service, _, _ := newEligibilityService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		vehicle  string
		items    []OrderItemDTO
		expected bool
	}{
		{
			name:     "Walking carries five small",
			vehicle:  "walking",
			items:    []OrderItemDTO{{Size: "small", Quantity: 5}},
			expected: true,
		},
		{
			name:     "Walking rejects six small",
			vehicle:  "walking",
			items:    []OrderItemDTO{{Size: "small", Quantity: 6}},
			expected: false,
		},
		{
			name:     "Van carries mixed order",
			vehicle:  "van",
			items:    []OrderItemDTO{{Size: "small", Quantity: 40}, {Size: "extra_large", Quantity: 2}},
			expected: true,
		},
		{
			name:     "Empty order is carryable",
			vehicle:  "bicycle",
			items:    nil,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto, err := service.CheckVehicle(ctx, CheckVehicleQuery{Vehicle: tt.vehicle, Items: tt.items})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dto.CanCarry)
			assert.Equal(t, tt.vehicle, dto.Vehicle)
			assert.Len(t, dto.Demand, 4)
		})
	}
}

func TestCheckVehicleInvalidInput(t *testing.T) {
	service, _, _ := newEligibilityService(t)
	ctx := context.Background()

	_, err := service.CheckVehicle(ctx, CheckVehicleQuery{Vehicle: "hoverboard"})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)

	_, err = service.CheckVehicle(ctx, CheckVehicleQuery{
		Vehicle: "van",
		Items:   []OrderItemDTO{{Size: "small", Quantity: -2}},
	})
	require.Error(t, err)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestClassifyShipment(t *testing.T) {
	service, _, _ := newEligibilityService(t)
	ctx := context.Background()

	dto, err := service.ClassifyShipment(ctx, ClassifyShipmentQuery{Size: "medium"})
	require.NoError(t, err)
	assert.Equal(t, "car", dto.MinimumVehicle)
	assert.Equal(t, []string{"car", "suv", "van"}, dto.CompatibleVehicles)

	dto, err = service.ClassifyShipment(ctx, ClassifyShipmentQuery{Size: "extra_large"})
	require.NoError(t, err)
	assert.Equal(t, "van", dto.MinimumVehicle)
	assert.Equal(t, []string{"van"}, dto.CompatibleVehicles)

	_, err = service.ClassifyShipment(ctx, ClassifyShipmentQuery{Size: "huge"})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestEvaluateOrder(t *testing.T) {
	service, repo, publisher := newEligibilityService(t)
	ctx := context.Background()

	registerCouriers(t, repo, map[string]string{
		"COUR-WALK": "walking",
		"COUR-BIKE": "bicycle",
		"COUR-CAR":  "car",
		"COUR-VAN":  "van",
	})

	result, err := service.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: "ORDER-001",
		StoreID: "STORE-001",
		Items: []OrderItemDTO{
			{Size: "small", Quantity: 8},
			{Size: "medium", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ORDER-001", result.OrderID)
	assert.Equal(t, "car", result.MinimumVehicle)

	ids := make([]string, 0, len(result.EligibleCouriers))
	for _, courier := range result.EligibleCouriers {
		ids = append(ids, courier.CourierID)
	}
	assert.ElementsMatch(t, []string{"COUR-CAR", "COUR-VAN"}, ids)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, cloudevents.EligibilityEvaluated, event.Type)
	assert.Equal(t, "ORDER-001", event.OrderID)

	data, ok := event.Data.(cloudevents.EligibilityEvaluatedData)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"COUR-CAR", "COUR-VAN"}, data.EligibleCourierIDs)
	assert.Equal(t, 8, data.Demand["small"])
}

func TestEvaluateOrderSkipsInactiveCouriers(t *testing.T) {
	service, repo, _ := newEligibilityService(t)
	ctx := context.Background()

	registerCouriers(t, repo, map[string]string{
		"COUR-VAN-1": "van",
		"COUR-VAN-2": "van",
	})

	courierService := NewCourierApplicationService(repo, newTestLogger(), metrics.New(metrics.DefaultConfig("test")))
	_, err := courierService.SetStatus(ctx, SetCourierStatusCommand{CourierID: "COUR-VAN-2", Status: "offline"})
	require.NoError(t, err)

	result, err := service.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: "ORDER-002",
		StoreID: "STORE-001",
		Items:   []OrderItemDTO{{Size: "extra_large", Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, result.EligibleCouriers, 1)
	assert.Equal(t, "COUR-VAN-1", result.EligibleCouriers[0].CourierID)
}

func TestEvaluateOrderEmptyOrder(t *testing.T) {
	service, repo, _ := newEligibilityService(t)
	ctx := context.Background()

	registerCouriers(t, repo, map[string]string{"COUR-WALK": "walking"})

	result, err := service.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: "ORDER-003",
		StoreID: "STORE-001",
		Items:   nil,
	})
	require.NoError(t, err)

	// Every active courier is eligible for an empty order
	assert.Len(t, result.EligibleCouriers, 1)
	assert.Equal(t, "walking", result.MinimumVehicle)
}

func TestEvaluateOrderInvalidItems(t *testing.T) {
	service, _, publisher := newEligibilityService(t)
	ctx := context.Background()

	_, err := service.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: "ORDER-004",
		StoreID: "STORE-001",
		Items:   []OrderItemDTO{{Size: "small", Quantity: -1}},
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
	assert.Empty(t, publisher.events)
}

func TestEvaluateOrderPublishFailureDoesNotFailEvaluation(t *testing.T) {
	service, repo, publisher := newEligibilityService(t)
	publisher.err = assert.AnError
	ctx := context.Background()

	registerCouriers(t, repo, map[string]string{"COUR-VAN": "van"})

	result, err := service.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: "ORDER-005",
		StoreID: "STORE-001",
		Items:   []OrderItemDTO{{Size: "large", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, result.EligibleCouriers, 1)
}
