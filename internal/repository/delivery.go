package repository

import (
	"context"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/store"
)

// DeliveryRepo persists delivery requests.
type DeliveryRepo struct {
	coll *store.Collection[domain.DeliveryRequest, *domain.DeliveryRequest]
}

// NewDeliveryRepo creates a new DeliveryRepo over the given backend.
func NewDeliveryRepo(docs store.DocStore) *DeliveryRepo {
	return &DeliveryRepo{coll: store.NewCollection[domain.DeliveryRequest](docs, "delivery_requests")}
}

// Create persists a new delivery request.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.DeliveryRequest) error {
	return r.coll.Create(ctx, d)
}

// Update stores a delivery request with a compare-and-set on its version.
func (r *DeliveryRepo) Update(ctx context.Context, d *domain.DeliveryRequest) error {
	return r.coll.Update(ctx, d)
}

// GetByAlertID returns the delivery request of an alert, or (nil, nil).
func (r *DeliveryRepo) GetByAlertID(ctx context.Context, alertID string) (*domain.DeliveryRequest, error) {
	all, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range all {
		if d.AlertID == alertID {
			return d, nil
		}
	}
	return nil, nil
}
