package cloudevents

// CloudEvents extension attribute names for ShopIt context
const (
	ExtCorrelationID = "shopitcorrelationid"
	ExtStoreID       = "shopitstoreid"
	ExtOrderID       = "shopitorderid"
)

// WithCorrelation sets the correlation ID and returns the event
func (e *ShopCloudEvent) WithCorrelation(correlationID string) *ShopCloudEvent {
	e.CorrelationID = correlationID
	return e
}

// WithStore sets the store ID and returns the event
func (e *ShopCloudEvent) WithStore(storeID string) *ShopCloudEvent {
	e.StoreID = storeID
	return e
}

// WithOrder sets the order ID and returns the event
func (e *ShopCloudEvent) WithOrder(orderID string) *ShopCloudEvent {
	e.OrderID = orderID
	return e
}
