package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"course-go-avito-dispatch/internal/config"
	"course-go-avito-dispatch/internal/logx"
	dispatchsvc "course-go-avito-dispatch/internal/service/dispatch"
	"course-go-avito-dispatch/internal/service/events"
	"course-go-avito-dispatch/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the DI container for the Kafka worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	container, err := buildWorkerContainer(ctx, NewContainerBuilder())
	if err != nil {
		log.Fatalf("failed to build worker container: %v", err)
	}
	return container
}

func buildWorkerContainer(ctx context.Context, b *ContainerBuilder) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDispatch(container); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	if err := registerConsumer(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

func registerConsumer(container *dig.Container) error {
	return provideAll(container,
		func(svc *dispatchsvc.Service) *events.Processor {
			return events.NewProcessor(svc)
		},
		makeDeliveriesKafka,
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}

// WorkerRunner runs the Kafka worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
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
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(pool, logger, consumer)

	logger.Info("service-dispatch-worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, kafkaConsumer *kafka.Consumer) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Any("err", err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
