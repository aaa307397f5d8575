package handlers

import (
	"time"

	"service-foodrescue/internal/domain"
)

type foodItemDTO struct {
	Label     string     `json:"label"`
	Count     int        `json:"count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type alertDTO struct {
	ID                string        `json:"id"`
	RestaurantID      string        `json:"restaurant_id"`
	FoodBankID        string        `json:"foodbank_id,omitempty"`
	DriverID          string        `json:"driver_id,omitempty"`
	Status            string        `json:"status"`
	FoodItems         []foodItemDTO `json:"food_items"`
	TotalQuantity     int           `json:"total_quantity"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	ExpiresAt         time.Time     `json:"expires_at"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	NotifiedFoodBanks []string      `json:"notified_foodbanks"`
}

// partySummaryDTO is the contact projection embedded into alert detail
// responses.
type partySummaryDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type alertDetailDTO struct {
	alertDTO
	Restaurant *partySummaryDTO `json:"restaurant,omitempty"`
	FoodBank   *partySummaryDTO `json:"foodbank,omitempty"`
	Driver     *partySummaryDTO `json:"driver,omitempty"`
}

type createAlertRequest struct {
	RestaurantID string        `json:"restaurant_id"`
	FoodItems    []foodItemDTO `json:"food_items"`
	Notes        string        `json:"notes,omitempty"`
}

type acceptAlertRequest struct {
	FoodBankID string `json:"foodbank_id"`
}

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

type updateAlertStatusRequest struct {
	Status string `json:"status"`
}

type restaurantDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Address       string              `json:"address"`
	Coordinates   *domain.Coordinates `json:"coordinates,omitempty"`
	ContactPerson string              `json:"contact_person,omitempty"`
	IsActive      bool                `json:"is_active"`
}

type createRestaurantRequest struct {
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Address       string              `json:"address"`
	Coordinates   *domain.Coordinates `json:"coordinates,omitempty"`
	ContactPerson string              `json:"contact_person,omitempty"`
}

type foodBankDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Address       string              `json:"address"`
	Coordinates   *domain.Coordinates `json:"coordinates,omitempty"`
	Capacity      int                 `json:"capacity"`
	CurrentLoad   int                 `json:"current_load"`
	ContactPerson string              `json:"contact_person,omitempty"`
	IsActive      bool                `json:"is_active"`
}

type createFoodBankRequest struct {
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Address       string              `json:"address"`
	Coordinates   *domain.Coordinates `json:"coordinates,omitempty"`
	Capacity      int                 `json:"capacity"`
	CurrentLoad   int                 `json:"current_load"`
	ContactPerson string              `json:"contact_person,omitempty"`
}

type driverDTO struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email,omitempty"`
	Phone           string              `json:"phone,omitempty"`
	LicenseNumber   string              `json:"license_number"`
	VehicleType     string              `json:"vehicle_type,omitempty"`
	CurrentLocation *domain.Coordinates `json:"current_location,omitempty"`
	IsAvailable     bool                `json:"is_available"`
	IsActive        bool                `json:"is_active"`
	Rating          float64             `json:"rating"`
}

type createDriverRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"license_number"`
	VehicleType   string `json:"vehicle_type,omitempty"`
}

type driverAvailabilityRequest struct {
	IsAvailable bool                `json:"is_available"`
	Location    *domain.Coordinates `json:"location,omitempty"`
}

type geocodeRequest struct {
	Address string `json:"address"`
}

type geocodeResponse struct {
	Address     string             `json:"address"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

type distanceRequest struct {
	From        *domain.Coordinates `json:"from,omitempty"`
	To          *domain.Coordinates `json:"to,omitempty"`
	FromAddress string              `json:"from_address,omitempty"`
	ToAddress   string              `json:"to_address,omitempty"`
}

type distanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}
