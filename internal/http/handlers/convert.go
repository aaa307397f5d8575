package handlers

import (
	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/service/alert"
)

func (r createAlertRequest) toInput() alert.CreateInput {
	items := make([]domain.FoodItem, 0, len(r.FoodItems))
	for _, it := range r.FoodItems {
		items = append(items, domain.FoodItem{Label: it.Label, Count: it.Count, ExpiresAt: it.ExpiresAt})
	}
	return alert.CreateInput{
		RestaurantID: r.RestaurantID,
		Items:        items,
		Notes:        r.Notes,
	}
}

func alertToResponse(a *domain.Alert) alertDTO {
	items := make([]foodItemDTO, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, foodItemDTO{Label: it.Label, Count: it.Count, ExpiresAt: it.ExpiresAt})
	}
	notified := a.NotifiedFoodBanks
	if notified == nil {
		notified = []string{}
	}
	return alertDTO{
		ID:                a.ID,
		RestaurantID:      a.RestaurantID,
		FoodBankID:        a.FoodBankID,
		DriverID:          a.DriverID,
		Status:            string(a.Status),
		FoodItems:         items,
		TotalQuantity:     a.TotalQuantity,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		ExpiresAt:         a.ExpiresAt,
		DeliveredAt:       a.DeliveredAt,
		NotifiedFoodBanks: notified,
	}
}

func alertsToResponse(list []*domain.Alert) []alertDTO {
	out := make([]alertDTO, 0, len(list))
	for _, a := range list {
		out = append(out, alertToResponse(a))
	}
	return out
}

func (r createRestaurantRequest) toModel() *domain.Restaurant {
	return &domain.Restaurant{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		Coordinates:   r.Coordinates,
		ContactPerson: r.ContactPerson,
	}
}

func restaurantToResponse(m *domain.Restaurant) restaurantDTO {
	return restaurantDTO{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		Coordinates:   m.Coordinates,
		ContactPerson: m.ContactPerson,
		IsActive:      m.IsActive,
	}
}

func restaurantsToResponse(list []*domain.Restaurant) []restaurantDTO {
	out := make([]restaurantDTO, 0, len(list))
	for _, m := range list {
		out = append(out, restaurantToResponse(m))
	}
	return out
}

func (r createFoodBankRequest) toModel() *domain.FoodBank {
	return &domain.FoodBank{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		Coordinates:   r.Coordinates,
		Capacity:      r.Capacity,
		CurrentLoad:   r.CurrentLoad,
		ContactPerson: r.ContactPerson,
	}
}

func foodBankToResponse(m *domain.FoodBank) foodBankDTO {
	return foodBankDTO{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		Coordinates:   m.Coordinates,
		Capacity:      m.Capacity,
		CurrentLoad:   m.CurrentLoad,
		ContactPerson: m.ContactPerson,
		IsActive:      m.IsActive,
	}
}

func foodBanksToResponse(list []*domain.FoodBank) []foodBankDTO {
	out := make([]foodBankDTO, 0, len(list))
	for _, m := range list {
		out = append(out, foodBankToResponse(m))
	}
	return out
}

func (r createDriverRequest) toModel() *domain.Driver {
	return &domain.Driver{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		LicenseNumber: r.LicenseNumber,
		VehicleType:   r.VehicleType,
	}
}

func driverToResponse(m *domain.Driver) driverDTO {
	return driverDTO{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		LicenseNumber:   m.LicenseNumber,
		VehicleType:     m.VehicleType,
		CurrentLocation: m.CurrentLocation,
		IsAvailable:     m.IsAvailable,
		IsActive:        m.IsActive,
		Rating:          m.Rating,
	}
}

func driversToResponse(list []*domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, m := range list {
		out = append(out, driverToResponse(m))
	}
	return out
}
