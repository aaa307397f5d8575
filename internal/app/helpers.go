package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-foodrescue/internal/store"
)

var openPool = store.NewPool

// connectDocStoreWithRetry dials the documents database, giving each
// attempt its own 3 second budget.
func connectDocStoreWithRetry(ctx context.Context, dsn string, attempts int, delay time.Duration) (*pgxpool.Pool, error) {
	const attemptTimeout = 3 * time.Second

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := openPool(dialCtx, dsn)
		cancel()
		if err == nil {
			log.Printf("document store connected on attempt %d", attempt)
			return pool, nil
		}
		lastErr = err
		log.Printf("document store connect failed (attempt %d/%d): %v", attempt, attempts, err)
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("document store connect failed after %d attempts: %w", attempts, lastErr)
}
