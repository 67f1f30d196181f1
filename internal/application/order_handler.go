package application

import (
	"context"

	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/errors"
	"github.com/shopit-platform/courier-capacity-service/pkg/logging"
)

// OrderEventHandler reacts to order lifecycle events from the order service
// by evaluating courier eligibility for each placed order
type OrderEventHandler struct {
	eligibility *EligibilityApplicationService
	logger      *logging.Logger
}

// NewOrderEventHandler creates a new OrderEventHandler
func NewOrderEventHandler(eligibility *EligibilityApplicationService, logger *logging.Logger) *OrderEventHandler {
	return &OrderEventHandler{
		eligibility: eligibility,
		logger:      logger,
	}
}

// HandleOrderPlaced evaluates courier eligibility for a freshly placed
// order. Malformed orders are logged and dropped so they do not block the
// partition; infrastructure failures are returned for redelivery.
func (h *OrderEventHandler) HandleOrderPlaced(ctx context.Context, event *cloudevents.ShopCloudEvent) error {
	var data cloudevents.OrderPlacedData
	if err := cloudevents.DecodeData(event, &data); err != nil {
		h.logger.WithError(err).Error("Failed to decode order placed event", "eventId", event.ID)
		return nil
	}

	items := make([]OrderItemDTO, 0, len(data.Lines))
	for _, line := range data.Lines {
		items = append(items, OrderItemDTO{Size: line.Size, Quantity: line.Quantity})
	}

	result, err := h.eligibility.EvaluateOrder(ctx, EvaluateOrderCommand{
		OrderID: data.OrderID,
		StoreID: data.StoreID,
		Items:   items,
	})
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeValidationError {
			h.logger.WithError(err).Error("Dropping order with invalid lines",
				"orderId", data.OrderID,
				"eventId", event.ID)
			return nil
		}
		return err
	}

	h.logger.Info("Evaluated courier eligibility for order",
		"orderId", result.OrderID,
		"storeId", result.StoreID,
		"eligibleCount", len(result.EligibleCouriers))
	return nil
}
