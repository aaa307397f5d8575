package alert

import (
	"context"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/repository"
)

// AlertStore persists alerts. Update must fail with apperr.ErrConflict
// when the stored version moved under the caller.
type AlertStore interface {
	Create(ctx context.Context, a *domain.Alert) error
	Get(ctx context.Context, id string) (*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	List(ctx context.Context, f repository.AlertFilter) ([]*domain.Alert, error)
}

// DeliveryStore persists delivery requests.
type DeliveryStore interface {
	Create(ctx context.Context, d *domain.DeliveryRequest) error
	Update(ctx context.Context, d *domain.DeliveryRequest) error
	GetByAlertID(ctx context.Context, alertID string) (*domain.DeliveryRequest, error)
}

// Directory is the party registry view the engine needs. Lookups
// return (nil, nil) when the party does not exist.
type Directory interface {
	Restaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	FoodBank(ctx context.Context, id string) (*domain.FoodBank, error)
	Driver(ctx context.Context, id string) (*domain.Driver, error)
	ActiveFoodBanks(ctx context.Context) ([]*domain.FoodBank, error)
	AvailableDrivers(ctx context.Context) ([]*domain.Driver, error)
	UpdateDriver(ctx context.Context, d *domain.Driver) error
}

// Publisher fans an event out to the members of a topic and reports
// how many received it.
type Publisher interface {
	Publish(topic, event string, payload any) int
}

// Timers schedules and cancels the per-alert escalation callback.
type Timers interface {
	Arm(alertID string)
	Disarm(alertID string)
}

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

type counter interface {
	Inc()
}

// DiscardPublisher drops every event. Used by processes without a
// WebSocket surface, such as the status feed worker.
type DiscardPublisher struct{}

// Publish implements Publisher.
func (DiscardPublisher) Publish(string, string, any) int { return 0 }
