package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/service/escalation"
	"service-foodrescue/internal/transport/kafka"
)

// WorkerRunner runs the status feed worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes the status feed until the context is cancelled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	sched *escalation.Scheduler,
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(pool, sched, logger, consumer)

	logger.Info("service-rescue-worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, sched *escalation.Scheduler, logger logx.Logger, consumer *kafka.Consumer) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if sched != nil {
		sched.Close()
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
