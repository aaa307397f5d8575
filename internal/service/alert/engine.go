// Package alert implements the donation lifecycle: creation, recipient
// notification with timed escalation, driver dispatch and delivery
// completion. The engine is the only writer of alert status and of the
// notified-food-banks list.
package alert

import (
	"context"
	"fmt"
	"time"

	"service-foodrescue/internal/apperr"
	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/realtime"
	"service-foodrescue/internal/repository"
)

const (
	defaultDonationTTL      = 24 * time.Hour
	defaultDeliveryEstimate = 30 * time.Minute
)

// Config carries the engine's tunables. Zero values fall back to the
// 24h donation window and the 30 minute delivery estimate.
type Config struct {
	DonationTTL      time.Duration
	DeliveryEstimate time.Duration
}

// Deps lists the engine's collaborators. Escalations and Expired are
// optional counters.
type Deps struct {
	Alerts      AlertStore
	Deliveries  DeliveryStore
	Directory   Directory
	Publisher   Publisher
	Timers      Timers
	Geocoder    Geocoder
	Logger      logx.Logger
	Escalations counter
	Expired     counter
}

// Engine drives alerts through the state machine. Every
// read-modify-write runs under a per-alert mutex; the store's version
// check backstops writers outside this process.
type Engine struct {
	deps  Deps
	cfg   Config
	locks *keyedMutex
	now   func() time.Time
}

// NewEngine builds the lifecycle engine.
func NewEngine(deps Deps, cfg Config) *Engine {
	if cfg.DonationTTL <= 0 {
		cfg.DonationTTL = defaultDonationTTL
	}
	if cfg.DeliveryEstimate <= 0 {
		cfg.DeliveryEstimate = defaultDeliveryEstimate
	}
	return &Engine{
		deps:  deps,
		cfg:   cfg,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// CreateInput is a new donation offer from a restaurant.
type CreateInput struct {
	RestaurantID string
	Items        []domain.FoodItem
	Notes        string
}

func (in CreateInput) validate() error {
	if in.RestaurantID == "" {
		return fmt.Errorf("%w: restaurant_id is required", apperr.ErrInvalid)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: at least one food item is required", apperr.ErrInvalid)
	}
	for i, it := range in.Items {
		if it.Label == "" {
			return fmt.Errorf("%w: food item %d has no label", apperr.ErrInvalid, i)
		}
		if it.Count <= 0 {
			return fmt.Errorf("%w: food item %q has non-positive count", apperr.ErrInvalid, it.Label)
		}
	}
	return nil
}

// Create registers a donation, notifies the nearest eligible food bank
// and arms the escalation timer.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*domain.Alert, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	restaurant, err := e.deps.Directory.Restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("%w: restaurant %s", apperr.ErrNotFound, in.RestaurantID)
	}

	now := e.now()
	a := &domain.Alert{
		RestaurantID:  in.RestaurantID,
		Status:        domain.StatusCreated,
		Items:         in.Items,
		TotalQuantity: domain.TotalCount(in.Items),
		Notes:         in.Notes,
		ExpiresAt:     now.Add(e.cfg.DonationTTL),
	}
	if err := e.deps.Alerts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	e.deps.Logger.Info("alert created",
		logx.String("alert_id", a.ID),
		logx.String("restaurant_id", a.RestaurantID),
		logx.Int("total_quantity", a.TotalQuantity),
	)

	// The notify hand-off is a read-modify-write like any other and
	// runs under the per-alert lock; an Accept arriving early waits
	// for it.
	unlock := e.locks.lock(a.ID)
	defer unlock()

	if err := e.notifyCandidates(ctx, a, e.resolveOrigin(ctx, restaurant), false); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns one alert.
func (e *Engine) Get(ctx context.Context, id string) (*domain.Alert, error) {
	a, err := e.deps.Alerts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: alert %s", apperr.ErrNotFound, id)
	}
	return a, nil
}

// List returns alerts matching the filter.
func (e *Engine) List(ctx context.Context, f repository.AlertFilter) ([]*domain.Alert, error) {
	return e.deps.Alerts.List(ctx, f)
}

// Accept records a food bank taking the donation, cancels the pending
// escalation and broadcasts a delivery request to available drivers.
func (e *Engine) Accept(ctx context.Context, alertID, foodBankID string) (*domain.Alert, error) {
	if foodBankID == "" {
		return nil, fmt.Errorf("%w: foodbank_id is required", apperr.ErrInvalid)
	}
	unlock := e.locks.lock(alertID)
	defer unlock()

	a, err := e.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}
	switch a.Status {
	case domain.StatusCreated, domain.StatusFoodBankNotified:
	default:
		return nil, fmt.Errorf("%w: cannot accept alert in status %s", apperr.ErrInvalidTransition, a.Status)
	}

	fb, err := e.deps.Directory.FoodBank(ctx, foodBankID)
	if err != nil {
		return nil, fmt.Errorf("load foodbank: %w", err)
	}
	if fb == nil {
		return nil, fmt.Errorf("%w: foodbank %s", apperr.ErrNotFound, foodBankID)
	}

	a.FoodBankID = foodBankID
	a.AppendNotified(foodBankID)
	a.Status = domain.StatusFoodBankAccepted
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}
	// Disarm only once the accept is recorded; a failed write must
	// leave the escalation timer pending.
	e.deps.Timers.Disarm(a.ID)
	e.deps.Logger.Info("alert accepted",
		logx.String("alert_id", a.ID),
		logx.String("foodbank_id", foodBankID),
	)
	e.publishStatus(a)

	if err := e.requestDrivers(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// requestDrivers broadcasts a pickup offer to every available driver.
// An empty pool is not an error: the alert stays accepted so drivers
// coming online can still be assigned by a dispatcher.
func (e *Engine) requestDrivers(ctx context.Context, a *domain.Alert) error {
	drivers, err := e.deps.Directory.AvailableDrivers(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}
	if len(drivers) == 0 {
		e.deps.Logger.Warn("no available drivers", logx.String("alert_id", a.ID))
		return nil
	}

	a.Status = domain.StatusDriverRequested
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return fmt.Errorf("update alert: %w", err)
	}

	payload := map[string]any{
		"alert_id":       a.ID,
		"restaurant_id":  a.RestaurantID,
		"foodbank_id":    a.FoodBankID,
		"total_quantity": a.TotalQuantity,
	}
	for _, d := range drivers {
		e.deps.Publisher.Publish(realtime.DriverTopic(d.ID), "delivery_request", payload)
	}
	e.deps.Logger.Info("delivery requested",
		logx.String("alert_id", a.ID),
		logx.Int("drivers", len(drivers)),
	)
	e.publishStatus(a)
	return nil
}

// AssignDriver matches a driver to an accepted alert, flips the driver
// unavailable and opens the delivery request.
func (e *Engine) AssignDriver(ctx context.Context, alertID, driverID string) (*domain.Alert, error) {
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver_id is required", apperr.ErrInvalid)
	}
	unlock := e.locks.lock(alertID)
	defer unlock()

	a, err := e.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}
	switch a.Status {
	case domain.StatusFoodBankAccepted, domain.StatusDriverRequested:
	default:
		return nil, fmt.Errorf("%w: cannot assign driver to alert in status %s", apperr.ErrInvalidTransition, a.Status)
	}

	d, err := e.deps.Directory.Driver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("load driver: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	if !d.IsActive || !d.IsAvailable {
		return nil, fmt.Errorf("%w: driver %s is not available", apperr.ErrUnavailable, driverID)
	}

	d.IsAvailable = false
	if err := e.deps.Directory.UpdateDriver(ctx, d); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	req, err := e.buildDeliveryRequest(ctx, a, d)
	if err != nil {
		return nil, err
	}
	if err := e.deps.Deliveries.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create delivery request: %w", err)
	}

	a.DriverID = driverID
	a.Status = domain.StatusDriverAssigned
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}
	e.deps.Logger.Info("driver assigned",
		logx.String("alert_id", a.ID),
		logx.String("driver_id", driverID),
	)

	payload := map[string]any{"alert": a, "delivery_request": req}
	e.deps.Publisher.Publish(realtime.DriverTopic(driverID), "delivery_assigned", payload)
	if a.FoodBankID != "" {
		e.deps.Publisher.Publish(realtime.FoodBankTopic(a.FoodBankID), "delivery_assigned", payload)
	}
	e.publishStatus(a)
	return a, nil
}

func (e *Engine) buildDeliveryRequest(ctx context.Context, a *domain.Alert, d *domain.Driver) (*domain.DeliveryRequest, error) {
	restaurant, err := e.deps.Directory.Restaurant(ctx, a.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	fb, err := e.deps.Directory.FoodBank(ctx, a.FoodBankID)
	if err != nil {
		return nil, fmt.Errorf("load foodbank: %w", err)
	}

	req := &domain.DeliveryRequest{
		AlertID:           a.ID,
		DriverID:          d.ID,
		EstimatedDuration: e.cfg.DeliveryEstimate,
	}
	if restaurant != nil {
		req.PickupAddress = restaurant.Address
		req.PickupCoordinates = restaurant.Coordinates
	}
	if fb != nil {
		req.DeliveryAddress = fb.Address
		req.DeliveryCoordinates = fb.Coordinates
	}
	return req, nil
}

// UpdateStatus applies a driver-reported progress update. Only
// in_transit, delivered and cancelled are accepted here.
func (e *Engine) UpdateStatus(ctx context.Context, alertID string, status domain.AlertStatus) (*domain.Alert, error) {
	if !status.DriverReportable() {
		return nil, fmt.Errorf("%w: status %s cannot be reported", apperr.ErrInvalid, status)
	}
	unlock := e.locks.lock(alertID)
	defer unlock()

	a, err := e.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: alert is already %s", apperr.ErrInvalidTransition, a.Status)
	}

	switch status {
	case domain.StatusInTransit:
		if a.Status != domain.StatusDriverAssigned {
			return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, a.Status, status)
		}
		if err := e.stampDelivery(ctx, a.ID, func(req *domain.DeliveryRequest, now time.Time) {
			req.ActualPickupTime = &now
		}); err != nil {
			return nil, err
		}
	case domain.StatusDelivered:
		if a.Status != domain.StatusInTransit {
			return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, a.Status, status)
		}
		now := e.now()
		a.DeliveredAt = &now
		if err := e.stampDelivery(ctx, a.ID, func(req *domain.DeliveryRequest, now time.Time) {
			req.ActualDeliveryTime = &now
		}); err != nil {
			return nil, err
		}
		if err := e.freeDriver(ctx, a.DriverID); err != nil {
			return nil, err
		}
	case domain.StatusCancelled:
		if err := e.freeDriver(ctx, a.DriverID); err != nil {
			return nil, err
		}
	}

	a.Status = status
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}
	if status.Terminal() {
		e.deps.Timers.Disarm(a.ID)
	}
	e.deps.Logger.Info("alert status changed",
		logx.String("alert_id", a.ID),
		logx.String("status", string(status)),
	)
	e.publishStatus(a)
	return a, nil
}

func (e *Engine) stampDelivery(ctx context.Context, alertID string, stamp func(*domain.DeliveryRequest, time.Time)) error {
	req, err := e.deps.Deliveries.GetByAlertID(ctx, alertID)
	if err != nil {
		return fmt.Errorf("load delivery request: %w", err)
	}
	if req == nil {
		return nil
	}
	stamp(req, e.now())
	if err := e.deps.Deliveries.Update(ctx, req); err != nil {
		return fmt.Errorf("update delivery request: %w", err)
	}
	return nil
}

func (e *Engine) freeDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return nil
	}
	d, err := e.deps.Directory.Driver(ctx, driverID)
	if err != nil || d == nil {
		return err
	}
	d.IsAvailable = true
	if err := e.deps.Directory.UpdateDriver(ctx, d); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// HandleEscalation is the scheduler callback. It never returns an
// error: alerts that moved on since arming are skipped and transient
// failures are logged.
func (e *Engine) HandleEscalation(ctx context.Context, alertID string) {
	unlock := e.locks.lock(alertID)
	defer unlock()

	a, err := e.deps.Alerts.Get(ctx, alertID)
	if err != nil {
		e.deps.Logger.Error("escalation load failed", logx.String("alert_id", alertID), logx.Err(err))
		return
	}
	if a == nil {
		e.deps.Logger.Warn("escalation for unknown alert", logx.String("alert_id", alertID))
		return
	}
	if a.Status != domain.StatusFoodBankNotified {
		e.deps.Logger.Debug("escalation skipped",
			logx.String("alert_id", alertID),
			logx.String("status", string(a.Status)),
		)
		return
	}
	if e.now().After(a.ExpiresAt) {
		if err := e.expire(ctx, a); err != nil {
			e.deps.Logger.Error("expire failed", logx.String("alert_id", alertID), logx.Err(err))
		}
		return
	}

	if e.deps.Escalations != nil {
		e.deps.Escalations.Inc()
	}
	restaurant, err := e.deps.Directory.Restaurant(ctx, a.RestaurantID)
	if err != nil {
		e.deps.Logger.Error("escalation load failed", logx.String("alert_id", alertID), logx.Err(err))
		return
	}
	if err := e.notifyCandidates(ctx, a, e.resolveOrigin(ctx, restaurant), true); err != nil {
		e.deps.Logger.Error("escalation failed", logx.String("alert_id", alertID), logx.Err(err))
	}
}

func (e *Engine) expire(ctx context.Context, a *domain.Alert) error {
	a.Status = domain.StatusExpired
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	e.deps.Timers.Disarm(a.ID)
	if e.deps.Expired != nil {
		e.deps.Expired.Inc()
	}
	e.deps.Logger.Warn("alert expired", logx.String("alert_id", a.ID))
	e.publishStatus(a)
	return nil
}

// publishStatus tells every interested room where the alert stands now.
func (e *Engine) publishStatus(a *domain.Alert) {
	payload := map[string]any{"alert_id": a.ID, "status": a.Status, "alert": a}
	e.deps.Publisher.Publish(realtime.RestaurantTopic(a.RestaurantID), "alert_status_changed", payload)
	if a.FoodBankID != "" {
		e.deps.Publisher.Publish(realtime.FoodBankTopic(a.FoodBankID), "alert_status_changed", payload)
	}
	e.deps.Publisher.Publish(realtime.AlertTopic(a.ID), "alert_status_changed", payload)
}
