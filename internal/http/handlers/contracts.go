package handlers

import (
	"context"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/repository"
	"service-foodrescue/internal/service/alert"
	"service-foodrescue/internal/service/party"
)

type alertUsecase interface {
	Create(ctx context.Context, in alert.CreateInput) (*domain.Alert, error)
	Get(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context, f repository.AlertFilter) ([]*domain.Alert, error)
	Accept(ctx context.Context, alertID, foodBankID string) (*domain.Alert, error)
	AssignDriver(ctx context.Context, alertID, driverID string) (*domain.Alert, error)
	UpdateStatus(ctx context.Context, alertID string, status domain.AlertStatus) (*domain.Alert, error)
}

// NewAlertUsecase wires the lifecycle engine into an alertUsecase.
func NewAlertUsecase(e *alert.Engine) alertUsecase {
	return e
}

type partyUsecase interface {
	CreateRestaurant(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	Restaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	Restaurants(ctx context.Context) ([]*domain.Restaurant, error)
	CreateFoodBank(ctx context.Context, f *domain.FoodBank) (*domain.FoodBank, error)
	FoodBank(ctx context.Context, id string) (*domain.FoodBank, error)
	FoodBanks(ctx context.Context) ([]*domain.FoodBank, error)
	CreateDriver(ctx context.Context, d *domain.Driver) (*domain.Driver, error)
	Driver(ctx context.Context, id string) (*domain.Driver, error)
	Drivers(ctx context.Context) ([]*domain.Driver, error)
	AvailableDrivers(ctx context.Context) ([]*domain.Driver, error)
	SetDriverAvailability(ctx context.Context, id string, available bool, loc *domain.Coordinates) (*domain.Driver, error)
}

// NewPartyUsecase wires the party service into a partyUsecase.
func NewPartyUsecase(s *party.Service) partyUsecase {
	return s
}

type geocodeUsecase interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
