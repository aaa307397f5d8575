// Package app wires the service together and runs it.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-foodrescue/internal/config"
	"service-foodrescue/internal/gateway/geocode"
	"service-foodrescue/internal/http/handlers"
	"service-foodrescue/internal/http/router"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/metrics"
	"service-foodrescue/internal/realtime"
	"service-foodrescue/internal/repository"
	"service-foodrescue/internal/service/alert"
	"service-foodrescue/internal/service/escalation"
	"service-foodrescue/internal/service/party"
	"service-foodrescue/internal/service/statusfeed"
	"service-foodrescue/internal/store"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDocStoreWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStore(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerDomain(container); err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	if err := registerRealtime(container); err != nil {
		return nil, fmt.Errorf("realtime: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the service container with defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		func() *metrics.Set { return metrics.NewSet(prometheus.DefaultRegisterer) },
	)
}

func registerStore(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerStore := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (store.DocStore, *pgxpool.Pool, error) {
		if cfg.Store.Backend == "memory" {
			logger.Info("using in-memory document store")
			return store.NewMemory(), nil, nil
		}
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgres(pool)
		if err := pg.Bootstrap(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("bootstrap: %w", err)
		}
		return pg, pool, nil
	}
	return provideAll(container, providerStore)
}

func registerDomain(container *dig.Container) error {
	return provideAll(container,
		repository.NewAlertRepo,
		repository.NewDeliveryRepo,
		repository.NewDirectory,
		func(cfg *config.Config, logger logx.Logger, m *metrics.Set) *geocode.Retrying {
			client := geocode.NewClient(geocode.Config{
				BaseURL:   cfg.Geocode.BaseURL,
				UserAgent: cfg.Geocode.UserAgent,
				Timeout:   cfg.Geocode.Timeout,
			})
			return geocode.NewRetrying(client, logger, m.GeocodeRetriesTotal, geocode.RetryConfig{
				MaxAttempts: cfg.Geocode.MaxAttempts,
				BaseDelay:   cfg.Geocode.BaseDelay,
				MaxDelay:    cfg.Geocode.MaxDelay,
			})
		},
		func(cfg *config.Config, logger logx.Logger) *escalation.Scheduler {
			return escalation.New(cfg.Escalation.Delay, logger)
		},
		func(
			cfg *config.Config,
			alerts *repository.AlertRepo,
			deliveries *repository.DeliveryRepo,
			directory *repository.Directory,
			publisher alert.Publisher,
			sched *escalation.Scheduler,
			geocoder *geocode.Retrying,
			logger logx.Logger,
			m *metrics.Set,
		) *alert.Engine {
			engine := alert.NewEngine(alert.Deps{
				Alerts:      alerts,
				Deliveries:  deliveries,
				Directory:   directory,
				Publisher:   publisher,
				Timers:      sched,
				Geocoder:    geocoder,
				Logger:      logger,
				Escalations: m.EscalationsTotal,
				Expired:     m.AlertsExpiredTotal,
			}, alert.Config{
				DonationTTL:      cfg.Donation.TTL,
				DeliveryEstimate: cfg.Delivery.EstimatedDuration,
			})
			sched.Bind(engine.HandleEscalation)
			return engine
		},
		func(directory *repository.Directory, geocoder *geocode.Retrying, logger logx.Logger) *party.Service {
			return party.NewService(directory, geocoder, logger)
		},
		func(engine *alert.Engine, logger logx.Logger) *statusfeed.Processor {
			return statusfeed.NewProcessor(engine, logger)
		},
	)
}

func registerRealtime(container *dig.Container) error {
	return provideAll(container,
		func(logger logx.Logger, m *metrics.Set) *realtime.Hub {
			return realtime.NewHub(logger, m.RealtimeEventsTotal)
		},
		func(hub *realtime.Hub) alert.Publisher { return hub },
		realtime.NewHandler,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, engine *alert.Engine, parties *party.Service) *handlers.AlertHandler {
			return handlers.NewAlertHandler(logger, handlers.NewAlertUsecase(engine), handlers.NewPartyUsecase(parties))
		},
		func(logger logx.Logger, parties *party.Service) *handlers.PartyHandler {
			return handlers.NewPartyHandler(logger, handlers.NewPartyUsecase(parties))
		},
		func(logger logx.Logger, geocoder *geocode.Retrying) *handlers.UtilityHandler {
			return handlers.NewUtilityHandler(logger, geocoder)
		},
		func(
			cfg *config.Config,
			base *handlers.Handlers,
			alerts *handlers.AlertHandler,
			parties *handlers.PartyHandler,
			utility *handlers.UtilityHandler,
			ws *realtime.Handler,
			logger logx.Logger,
		) http.Handler {
			return router.New(router.Deps{
				Base:      base,
				Alerts:    alerts,
				Parties:   parties,
				Utility:   utility,
				WebSocket: ws,
				Logger:    logger,
				RateLimit: router.RateLimit(cfg.RateLimit),
			})
		},
		serverProvider,
	)
}
