//go:build integration

package store_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"service-foodrescue/internal/apperr"
	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/store"
)

var tcPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres testcontainer: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		if termErr := pgContainer.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after conn string error: %v", termErr)
		}
		log.Fatalf("failed to get connection string from container: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		if termErr := pgContainer.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after pool create error: %v", termErr)
		}
		log.Fatalf("failed to create pgx pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		if termErr := pgContainer.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after ping error: %v", termErr)
		}
		log.Fatalf("failed to ping postgres in testcontainer: %v", err)
	}

	tcPool = pool

	if err := store.NewPostgres(pool).Bootstrap(ctx); err != nil {
		pool.Close()
		if termErr := pgContainer.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after bootstrap error: %v", termErr)
		}
		log.Fatalf("failed to bootstrap documents table: %v", err)
	}

	code := m.Run()

	pool.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}

	os.Exit(code)
}

func TestPostgres_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[domain.Restaurant](store.NewPostgres(tcPool), "it_restaurants")

	r := &domain.Restaurant{Name: "Pane e Vino", Address: "Alexanderplatz 1", IsActive: true}
	require.NoError(t, coll.Create(ctx, r))
	require.NotEmpty(t, r.ID)
	require.EqualValues(t, 1, r.Version)

	got, err := coll.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "Pane e Vino", got.Name)

	got.Name = "Pane e Vino 2"
	require.NoError(t, coll.Update(ctx, got))
	require.EqualValues(t, 2, got.Version)

	missing, err := coll.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPostgres_StaleUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[domain.Alert](store.NewPostgres(tcPool), "it_alerts")

	a := &domain.Alert{RestaurantID: "r-1", Status: domain.StatusCreated}
	require.NoError(t, coll.Create(ctx, a))

	first, err := coll.Get(ctx, a.ID)
	require.NoError(t, err)
	second, err := coll.Get(ctx, a.ID)
	require.NoError(t, err)

	first.Status = domain.StatusFoodBankNotified
	require.NoError(t, coll.Update(ctx, first))

	second.Status = domain.StatusCancelled
	require.ErrorIs(t, coll.Update(ctx, second), apperr.ErrConflict)

	got, err := coll.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFoodBankNotified, got.Status)
}

func TestPostgres_ListInCreationOrder(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[domain.Driver](store.NewPostgres(tcPool), "it_drivers")

	for _, name := range []string{"a", "b", "c"} {
		d := &domain.Driver{Name: name, IsActive: true}
		require.NoError(t, coll.Create(ctx, d))
		time.Sleep(5 * time.Millisecond)
	}

	list, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "a", list[0].Name)
	require.Equal(t, "c", list[2].Name)
}
