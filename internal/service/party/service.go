// Package party registers and serves the three party kinds of the
// platform: restaurants, food banks and drivers.
package party

import (
	"context"
	"errors"
	"fmt"

	"service-foodrescue/internal/apperr"
	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
)

// Directory is the registry the service writes to.
type Directory interface {
	CreateRestaurant(ctx context.Context, r *domain.Restaurant) error
	Restaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	Restaurants(ctx context.Context) ([]*domain.Restaurant, error)
	CreateFoodBank(ctx context.Context, f *domain.FoodBank) error
	FoodBank(ctx context.Context, id string) (*domain.FoodBank, error)
	FoodBanks(ctx context.Context) ([]*domain.FoodBank, error)
	CreateDriver(ctx context.Context, d *domain.Driver) error
	Driver(ctx context.Context, id string) (*domain.Driver, error)
	Drivers(ctx context.Context) ([]*domain.Driver, error)
	AvailableDrivers(ctx context.Context) ([]*domain.Driver, error)
	UpdateDriver(ctx context.Context, d *domain.Driver) error
}

// Geocoder resolves street addresses. Optional.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Service validates and stores party registrations. Addresses are
// geocoded once at registration; an unresolved address is kept without
// coordinates rather than rejected.
type Service struct {
	directory Directory
	geocoder  Geocoder
	logger    logx.Logger
}

// NewService builds the party service.
func NewService(directory Directory, geocoder Geocoder, logger logx.Logger) *Service {
	return &Service{directory: directory, geocoder: geocoder, logger: logger}
}

func validateContact(name, email, phone string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if email != "" && !domain.ValidateEmail(email) {
		return fmt.Errorf("%w: malformed email %q", apperr.ErrInvalid, email)
	}
	if phone != "" && !domain.ValidatePhone(phone) {
		return fmt.Errorf("%w: malformed phone %q", apperr.ErrInvalid, phone)
	}
	return nil
}

// resolve fills in coordinates for an address when possible.
func (s *Service) resolve(ctx context.Context, address string) *domain.Coordinates {
	if s.geocoder == nil || address == "" {
		return nil
	}
	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if !errors.Is(err, apperr.ErrUnresolved) {
			s.logger.Warn("address geocode failed", logx.String("address", address), logx.Err(err))
		}
		return nil
	}
	return &coords
}

// CreateRestaurant registers a donating restaurant.
func (s *Service) CreateRestaurant(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	if err := validateContact(r.Name, r.Email, r.Phone); err != nil {
		return nil, err
	}
	if r.Address == "" {
		return nil, fmt.Errorf("%w: address is required", apperr.ErrInvalid)
	}
	if r.Coordinates == nil {
		r.Coordinates = s.resolve(ctx, r.Address)
	}
	r.IsActive = true
	if err := s.directory.CreateRestaurant(ctx, r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	s.logger.Info("restaurant registered", logx.String("restaurant_id", r.ID))
	return r, nil
}

// Restaurant returns one restaurant.
func (s *Service) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	r, err := s.directory.Restaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: restaurant %s", apperr.ErrNotFound, id)
	}
	return r, nil
}

// Restaurants lists every restaurant.
func (s *Service) Restaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.directory.Restaurants(ctx)
}

// CreateFoodBank registers a receiving food bank.
func (s *Service) CreateFoodBank(ctx context.Context, f *domain.FoodBank) (*domain.FoodBank, error) {
	if err := validateContact(f.Name, f.Email, f.Phone); err != nil {
		return nil, err
	}
	if f.Address == "" {
		return nil, fmt.Errorf("%w: address is required", apperr.ErrInvalid)
	}
	if f.Capacity < 0 || f.CurrentLoad < 0 {
		return nil, fmt.Errorf("%w: capacity fields must be non-negative", apperr.ErrInvalid)
	}
	if f.Coordinates == nil {
		f.Coordinates = s.resolve(ctx, f.Address)
	}
	f.IsActive = true
	if err := s.directory.CreateFoodBank(ctx, f); err != nil {
		return nil, fmt.Errorf("create foodbank: %w", err)
	}
	s.logger.Info("foodbank registered", logx.String("foodbank_id", f.ID))
	return f, nil
}

// FoodBank returns one food bank.
func (s *Service) FoodBank(ctx context.Context, id string) (*domain.FoodBank, error) {
	f, err := s.directory.FoodBank(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: foodbank %s", apperr.ErrNotFound, id)
	}
	return f, nil
}

// FoodBanks lists every food bank.
func (s *Service) FoodBanks(ctx context.Context) ([]*domain.FoodBank, error) {
	return s.directory.FoodBanks(ctx)
}

// CreateDriver registers a courier. New drivers start available.
func (s *Service) CreateDriver(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	if err := validateContact(d.Name, d.Email, d.Phone); err != nil {
		return nil, err
	}
	if d.LicenseNumber == "" {
		return nil, fmt.Errorf("%w: license_number is required", apperr.ErrInvalid)
	}
	d.IsActive = true
	d.IsAvailable = true
	if err := s.directory.CreateDriver(ctx, d); err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	s.logger.Info("driver registered", logx.String("driver_id", d.ID))
	return d, nil
}

// Driver returns one driver.
func (s *Service) Driver(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := s.directory.Driver(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: driver %s", apperr.ErrNotFound, id)
	}
	return d, nil
}

// Drivers lists every driver.
func (s *Service) Drivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.directory.Drivers(ctx)
}

// AvailableDrivers lists active drivers free to take a delivery.
func (s *Service) AvailableDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.directory.AvailableDrivers(ctx)
}

// SetDriverAvailability updates a driver's availability and, when
// provided, its last known location.
func (s *Service) SetDriverAvailability(ctx context.Context, id string, available bool, loc *domain.Coordinates) (*domain.Driver, error) {
	d, err := s.Driver(ctx, id)
	if err != nil {
		return nil, err
	}
	d.IsAvailable = available
	if loc != nil {
		d.CurrentLocation = loc
	}
	if err := s.directory.UpdateDriver(ctx, d); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}
	return d, nil
}
