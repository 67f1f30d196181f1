package application

import "github.com/shopit-platform/courier-capacity-service/internal/domain"

// ToCourierDTO converts a domain Courier to CourierDTO
func ToCourierDTO(courier *domain.Courier) *CourierDTO {
	if courier == nil {
		return nil
	}

	return &CourierDTO{
		CourierID: courier.CourierID,
		StoreID:   courier.StoreID,
		Name:      courier.Name,
		Vehicle:   string(courier.Vehicle),
		Status:    string(courier.Status),
		CreatedAt: courier.CreatedAt,
		UpdatedAt: courier.UpdatedAt,
	}
}

// ToCourierDTOs converts a slice of domain Couriers to CourierDTOs
func ToCourierDTOs(couriers []*domain.Courier) []CourierDTO {
	dtos := make([]CourierDTO, 0, len(couriers))
	for _, courier := range couriers {
		if dto := ToCourierDTO(courier); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToOrderItems converts order line DTOs to domain order items. Sizes are
// validated by the domain when the items are aggregated.
func ToOrderItems(items []OrderItemDTO) []domain.OrderItem {
	converted := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, domain.OrderItem{
			Size:     domain.ShipmentSize(item.Size),
			Quantity: item.Quantity,
		})
	}
	return converted
}

// ToDemandMap converts aggregated demand to a plain map for DTOs and events
func ToDemandMap(demand domain.AggregatedDemand) map[string]int {
	result := make(map[string]int, len(demand))
	for size, quantity := range demand {
		result[string(size)] = quantity
	}
	return result
}

// ToVehicleStrings converts vehicle categories to their string form
func ToVehicleStrings(vehicles []domain.VehicleCategory) []string {
	result := make([]string, 0, len(vehicles))
	for _, vehicle := range vehicles {
		result = append(result, string(vehicle))
	}
	return result
}
