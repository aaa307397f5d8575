package repository

import (
	"context"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/store"
)

// Directory is the party registry: restaurants, food banks and
// drivers. Reads dominate; the only writes the lifecycle engine does
// here are driver availability flips.
type Directory struct {
	restaurants *store.Collection[domain.Restaurant, *domain.Restaurant]
	foodbanks   *store.Collection[domain.FoodBank, *domain.FoodBank]
	drivers     *store.Collection[domain.Driver, *domain.Driver]
}

// NewDirectory creates a Directory over the given backend.
func NewDirectory(docs store.DocStore) *Directory {
	return &Directory{
		restaurants: store.NewCollection[domain.Restaurant](docs, "restaurants"),
		foodbanks:   store.NewCollection[domain.FoodBank](docs, "foodbanks"),
		drivers:     store.NewCollection[domain.Driver](docs, "drivers"),
	}
}

// CreateRestaurant persists a new restaurant.
func (d *Directory) CreateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	return d.restaurants.Create(ctx, r)
}

// Restaurant returns a restaurant by id, or (nil, nil) when absent.
func (d *Directory) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	return d.restaurants.Get(ctx, id)
}

// Restaurants returns every restaurant.
func (d *Directory) Restaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return d.restaurants.List(ctx)
}

// CreateFoodBank persists a new food bank.
func (d *Directory) CreateFoodBank(ctx context.Context, f *domain.FoodBank) error {
	return d.foodbanks.Create(ctx, f)
}

// FoodBank returns a food bank by id, or (nil, nil) when absent.
func (d *Directory) FoodBank(ctx context.Context, id string) (*domain.FoodBank, error) {
	return d.foodbanks.Get(ctx, id)
}

// FoodBanks returns every food bank.
func (d *Directory) FoodBanks(ctx context.Context) ([]*domain.FoodBank, error) {
	return d.foodbanks.List(ctx)
}

// ActiveFoodBanks returns active food banks in creation order.
func (d *Directory) ActiveFoodBanks(ctx context.Context) ([]*domain.FoodBank, error) {
	all, err := d.foodbanks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.FoodBank, 0, len(all))
	for _, f := range all {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

// CreateDriver persists a new driver.
func (d *Directory) CreateDriver(ctx context.Context, dr *domain.Driver) error {
	return d.drivers.Create(ctx, dr)
}

// Driver returns a driver by id, or (nil, nil) when absent.
func (d *Directory) Driver(ctx context.Context, id string) (*domain.Driver, error) {
	return d.drivers.Get(ctx, id)
}

// Drivers returns every driver.
func (d *Directory) Drivers(ctx context.Context) ([]*domain.Driver, error) {
	return d.drivers.List(ctx)
}

// AvailableDrivers returns active drivers currently free to take a delivery.
func (d *Directory) AvailableDrivers(ctx context.Context) ([]*domain.Driver, error) {
	all, err := d.drivers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Driver, 0, len(all))
	for _, dr := range all {
		if dr.IsActive && dr.IsAvailable {
			out = append(out, dr)
		}
	}
	return out, nil
}

// UpdateDriver stores a driver with a compare-and-set on its version.
func (d *Directory) UpdateDriver(ctx context.Context, dr *domain.Driver) error {
	return d.drivers.Update(ctx, dr)
}
