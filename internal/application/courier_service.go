package application

import (
	"context"
	"fmt"

	"github.com/shopit-platform/courier-capacity-service/internal/domain"
	"github.com/shopit-platform/courier-capacity-service/pkg/errors"
	"github.com/shopit-platform/courier-capacity-service/pkg/logging"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
)

// CourierApplicationService handles courier registry use cases
type CourierApplicationService struct {
	repo    domain.CourierRepository
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewCourierApplicationService creates a new CourierApplicationService
func NewCourierApplicationService(
	repo domain.CourierRepository,
	logger *logging.Logger,
	m *metrics.Metrics,
) *CourierApplicationService {
	return &CourierApplicationService{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// RegisterCourier registers a new courier for a store
func (s *CourierApplicationService) RegisterCourier(ctx context.Context, cmd RegisterCourierCommand) (*CourierDTO, error) {
	existing, err := s.repo.FindByID(ctx, cmd.CourierID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check courier existence", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to register courier: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("courier %s already exists", cmd.CourierID))
	}

	vehicle, err := domain.ParseVehicleCategory(cmd.Vehicle)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	courier, err := domain.NewCourier(cmd.CourierID, cmd.StoreID, cmd.Name, vehicle)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.repo.Save(ctx, courier); err != nil {
		s.logger.WithError(err).Error("Failed to save courier", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to register courier: %w", err)
	}

	// Events are saved to outbox by repository in transaction

	s.metrics.RecordCourierRegistered(string(vehicle))

	// Log business event: courier registered
	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "courier.registered",
		EntityType: "courier",
		EntityID:   cmd.CourierID,
		Action:     "registered",
		RelatedIDs: map[string]string{
			"storeId": cmd.StoreID,
			"vehicle": string(vehicle),
		},
	})

	return ToCourierDTO(courier), nil
}

// ChangeVehicle switches a courier's declared vehicle category
func (s *CourierApplicationService) ChangeVehicle(ctx context.Context, cmd ChangeVehicleCommand) (*CourierDTO, error) {
	courier, err := s.repo.FindByID(ctx, cmd.CourierID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get courier", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	if courier == nil {
		return nil, errors.ErrNotFound("courier")
	}

	vehicle, err := domain.ParseVehicleCategory(cmd.Vehicle)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	from := courier.Vehicle
	if err := courier.ChangeVehicle(vehicle); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.repo.Save(ctx, courier); err != nil {
		s.logger.WithError(err).Error("Failed to save courier", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to save courier: %w", err)
	}

	// Events are saved to outbox by repository in transaction

	s.metrics.RecordVehicleChange(string(from), string(vehicle))

	s.logger.Info("Changed courier vehicle",
		"courierId", cmd.CourierID,
		"fromVehicle", string(from),
		"toVehicle", string(vehicle))
	return ToCourierDTO(courier), nil
}

// SetStatus changes a courier's availability status
func (s *CourierApplicationService) SetStatus(ctx context.Context, cmd SetCourierStatusCommand) (*CourierDTO, error) {
	courier, err := s.repo.FindByID(ctx, cmd.CourierID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get courier", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	if courier == nil {
		return nil, errors.ErrNotFound("courier")
	}

	switch domain.CourierStatus(cmd.Status) {
	case domain.CourierStatusActive:
		err = courier.Activate()
	case domain.CourierStatusSuspended:
		err = courier.Suspend()
	case domain.CourierStatusOffline:
		err = courier.GoOffline()
	default:
		return nil, errors.ErrValidation(fmt.Sprintf("unknown courier status: %q", cmd.Status))
	}
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.repo.Save(ctx, courier); err != nil {
		s.logger.WithError(err).Error("Failed to save courier", "courierId", cmd.CourierID)
		return nil, fmt.Errorf("failed to save courier: %w", err)
	}

	// Events are saved to outbox by repository in transaction

	s.logger.Info("Changed courier status", "courierId", cmd.CourierID, "status", cmd.Status)
	return ToCourierDTO(courier), nil
}

// GetCourier retrieves a courier by ID
func (s *CourierApplicationService) GetCourier(ctx context.Context, query GetCourierQuery) (*CourierDTO, error) {
	courier, err := s.repo.FindByID(ctx, query.CourierID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get courier", "courierId", query.CourierID)
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	if courier == nil {
		return nil, errors.ErrNotFound("courier")
	}

	return ToCourierDTO(courier), nil
}

// ListCouriers retrieves the couriers registered for a store
func (s *CourierApplicationService) ListCouriers(ctx context.Context, query ListCouriersQuery) ([]CourierDTO, error) {
	var (
		couriers []*domain.Courier
		err      error
	)

	if query.ActiveOnly {
		couriers, err = s.repo.FindActiveByStore(ctx, query.StoreID)
	} else {
		couriers, err = s.repo.FindByStore(ctx, query.StoreID)
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to list couriers", "storeId", query.StoreID)
		return nil, fmt.Errorf("failed to list couriers: %w", err)
	}

	return ToCourierDTOs(couriers), nil
}
