package geocode

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
)

type geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behaviour of the Retrying geocoder.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Retrying wraps a geocoder with bounded exponential backoff on
// transient failures. Unresolved addresses are a final answer and are
// never retried.
type Retrying struct {
	next    geocoder
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetrying wraps next with retries; returns nil if next is nil.
func NewRetrying(next geocoder, logger logx.Logger, retries counter, cfg RetryConfig) *Retrying {
	if next == nil {
		return nil
	}
	return &Retrying{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// Geocode resolves an address, retrying transient failures.
func (g *Retrying) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		coords, err := g.next.Geocode(ctx, address)
		if err == nil {
			return coords, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("geocoder retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return domain.Coordinates{}, lastErr
}

// isRetryable treats server-side and transport failures as transient.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
