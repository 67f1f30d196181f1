package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopit-platform/courier-capacity-service/internal/domain"
	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/errors"
	"github.com/shopit-platform/courier-capacity-service/pkg/kafka"
	"github.com/shopit-platform/courier-capacity-service/pkg/logging"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
)

// EventPublisher publishes CloudEvents to a topic. Satisfied by the Kafka
// producer wrappers.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.ShopCloudEvent) error
}

// EligibilityApplicationService answers vehicle/shipment compatibility
// questions and computes eligible courier sets for orders
type EligibilityApplicationService struct {
	repo         domain.CourierRepository
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewEligibilityApplicationService creates a new EligibilityApplicationService
func NewEligibilityApplicationService(
	repo domain.CourierRepository,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *EligibilityApplicationService {
	return &EligibilityApplicationService{
		repo:         repo,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      m,
	}
}

// CheckVehicle reports whether a single vehicle category can carry the order
func (s *EligibilityApplicationService) CheckVehicle(ctx context.Context, query CheckVehicleQuery) (*VehicleCheckDTO, error) {
	vehicle, err := domain.ParseVehicleCategory(query.Vehicle)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	items := ToOrderItems(query.Items)
	demand, err := domain.AggregateItems(items)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	canCarry, err := domain.CanCarry(vehicle, items)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	s.metrics.RecordEligibilityEvaluation(string(vehicle), canCarry)

	return &VehicleCheckDTO{
		Vehicle:  string(vehicle),
		CanCarry: canCarry,
		Demand:   ToDemandMap(demand),
	}, nil
}

// ClassifyShipment resolves a shipment size to its minimum vehicle and the
// full compatible set
func (s *EligibilityApplicationService) ClassifyShipment(ctx context.Context, query ClassifyShipmentQuery) (*ClassificationDTO, error) {
	size, err := domain.ParseShipmentSize(query.Size)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	minimum, err := domain.MinimumVehicleFor(size)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	compatible, err := domain.CompatibleVehicles(size)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	return &ClassificationDTO{
		Size:               string(size),
		MinimumVehicle:     string(minimum),
		CompatibleVehicles: ToVehicleStrings(compatible),
	}, nil
}

// EvaluateOrder computes the set of active couriers whose vehicles can carry
// the order and publishes the verdict for downstream dispatch
func (s *EligibilityApplicationService) EvaluateOrder(ctx context.Context, cmd EvaluateOrderCommand) (*EligibilityResultDTO, error) {
	items := ToOrderItems(cmd.Items)
	demand, err := domain.AggregateItems(items)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	minimum, err := domain.MinimumVehicleForDemand(demand)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	couriers, err := s.repo.FindActiveByStore(ctx, cmd.StoreID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load active couriers", "storeId", cmd.StoreID)
		return nil, fmt.Errorf("failed to load active couriers: %w", err)
	}

	eligible := make([]*domain.Courier, 0, len(couriers))
	for _, courier := range couriers {
		canCarry, err := courier.CanHandleOrder(items)
		if err != nil {
			return nil, errors.MapDomainError(err)
		}

		s.metrics.RecordEligibilityEvaluation(string(courier.Vehicle), canCarry)
		if canCarry {
			eligible = append(eligible, courier)
		}
	}

	s.metrics.RecordEligibleCouriers(len(eligible))

	result := &EligibilityResultDTO{
		OrderID:          cmd.OrderID,
		StoreID:          cmd.StoreID,
		Demand:           ToDemandMap(demand),
		MinimumVehicle:   string(minimum),
		EligibleCouriers: ToCourierDTOs(eligible),
		EvaluatedAt:      time.Now().UTC(),
	}

	s.publishEvaluation(ctx, result)

	// Log business event: order eligibility evaluated
	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "dispatch.eligibility_evaluated",
		EntityType: "order",
		EntityID:   cmd.OrderID,
		Action:     "evaluated",
		RelatedIDs: map[string]string{
			"storeId":        cmd.StoreID,
			"minimumVehicle": result.MinimumVehicle,
			"eligibleCount":  fmt.Sprintf("%d", len(eligible)),
		},
	})

	return result, nil
}

// publishEvaluation emits the EligibilityEvaluated event. Delivery failures
// are logged but do not fail the evaluation; the verdict is still returned
// to the caller.
func (s *EligibilityApplicationService) publishEvaluation(ctx context.Context, result *EligibilityResultDTO) {
	courierIDs := make([]string, 0, len(result.EligibleCouriers))
	for _, courier := range result.EligibleCouriers {
		courierIDs = append(courierIDs, courier.CourierID)
	}

	event := s.eventFactory.CreateEligibilityEvaluatedEvent(
		ctx,
		result.OrderID,
		result.StoreID,
		result.Demand,
		result.MinimumVehicle,
		courierIDs,
	)

	if err := s.publisher.PublishEvent(ctx, kafka.Topics.DispatchEvents, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish eligibility verdict",
			"orderId", result.OrderID,
			"storeId", result.StoreID)
	}
}
