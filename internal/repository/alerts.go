// Package repository provides typed access to the document store:
// alert and delivery-request records plus the read-mostly party
// directory used for candidate selection.
package repository

import (
	"context"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/store"
)

// AlertFilter narrows List results. Zero-valued fields are ignored.
type AlertFilter struct {
	Status       domain.AlertStatus
	RestaurantID string
	FoodBankID   string
	DriverID     string
}

func (f AlertFilter) matches(a *domain.Alert) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.RestaurantID != "" && a.RestaurantID != f.RestaurantID {
		return false
	}
	if f.FoodBankID != "" && a.FoodBankID != f.FoodBankID {
		return false
	}
	if f.DriverID != "" && a.DriverID != f.DriverID {
		return false
	}
	return true
}

// AlertRepo persists alerts.
type AlertRepo struct {
	coll *store.Collection[domain.Alert, *domain.Alert]
}

// NewAlertRepo creates a new AlertRepo over the given backend.
func NewAlertRepo(docs store.DocStore) *AlertRepo {
	return &AlertRepo{coll: store.NewCollection[domain.Alert](docs, "alerts")}
}

// Create persists a new alert.
func (r *AlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	return r.coll.Create(ctx, a)
}

// Get returns an alert by id, or (nil, nil) when absent.
func (r *AlertRepo) Get(ctx context.Context, id string) (*domain.Alert, error) {
	return r.coll.Get(ctx, id)
}

// Update stores an alert with a compare-and-set on its version.
func (r *AlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	return r.coll.Update(ctx, a)
}

// List returns alerts matching the filter in creation order.
func (r *AlertRepo) List(ctx context.Context, f AlertFilter) ([]*domain.Alert, error) {
	all, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Alert, 0, len(all))
	for _, a := range all {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
