package app

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"service-foodrescue/internal/config"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/service/alert"
	"service-foodrescue/internal/service/statusfeed"
	"service-foodrescue/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the container of the status feed
// worker. The worker carries no WebSocket surface, so lifecycle events
// it triggers are not fanned out from this process.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	b := NewContainerBuilder()
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStore(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := provideAll(container,
		func() alert.Publisher { return alert.DiscardPublisher{} },
	); err != nil {
		return nil, fmt.Errorf("publisher: %w", err)
	}
	if err := registerDomain(container); err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	if err := provideAll(container,
		func(cfg *config.Config, p *statusfeed.Processor, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle, logger)
		},
	); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}
