// Package statusfeed applies driver-reported status events from the
// message broker to the alert lifecycle.
package statusfeed

import (
	"context"
	"errors"
	"time"

	"service-foodrescue/internal/apperr"
	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
)

// Event is one status report from the feed.
type Event struct {
	AlertID   string
	Status    string
	CreatedAt time.Time
}

// Lifecycle is the part of the alert engine the processor drives.
type Lifecycle interface {
	UpdateStatus(ctx context.Context, alertID string, status domain.AlertStatus) (*domain.Alert, error)
}

// Processor validates feed events and forwards them to the lifecycle.
// Events rejected by the lifecycle are dropped, not retried: a feed
// replay must not wedge on an alert that already moved on.
type Processor struct {
	lifecycle Lifecycle
	logger    logx.Logger
}

// NewProcessor builds a Processor.
func NewProcessor(lifecycle Lifecycle, logger logx.Logger) *Processor {
	return &Processor{lifecycle: lifecycle, logger: logger}
}

// Handle applies one event. Only store and infrastructure failures are
// returned to the caller for redelivery.
func (p *Processor) Handle(ctx context.Context, ev Event) error {
	status := domain.AlertStatus(ev.Status)
	_, err := p.lifecycle.UpdateStatus(ctx, ev.AlertID, status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrInvalid),
		errors.Is(err, apperr.ErrInvalidTransition):
		p.logger.Warn("status event dropped",
			logx.String("alert_id", ev.AlertID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
		return nil
	default:
		return err
	}
}
