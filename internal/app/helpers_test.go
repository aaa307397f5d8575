package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func stubOpenPool(t *testing.T, fn func(context.Context, string) (*pgxpool.Pool, error)) {
	t.Helper()
	old := openPool
	openPool = fn
	t.Cleanup(func() { openPool = old })
}

func TestConnectDocStoreWithRetry_EventualSuccess(t *testing.T) {
	calls := 0
	stubOpenPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return &pgxpool.Pool{}, nil
	})

	pool, err := connectDocStoreWithRetry(context.Background(), "dsn", 5, time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, pool)
	require.Equal(t, 3, calls)
}

func TestConnectDocStoreWithRetry_Exhausted(t *testing.T) {
	dialErr := errors.New("connection refused")
	stubOpenPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, dialErr
	})

	_, err := connectDocStoreWithRetry(context.Background(), "dsn", 2, time.Millisecond)
	require.ErrorIs(t, err, dialErr)
	require.Contains(t, err.Error(), "after 2 attempts")
}

func TestConnectDocStoreWithRetry_CancelledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stubOpenPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		cancel()
		return nil, errors.New("connection refused")
	})

	_, err := connectDocStoreWithRetry(ctx, "dsn", 3, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
