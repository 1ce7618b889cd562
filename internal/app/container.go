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

	"course-go-avito-dispatch/internal/config"
	dispatchseq "course-go-avito-dispatch/internal/dispatch"
	"course-go-avito-dispatch/internal/gateway/notify"
	"course-go-avito-dispatch/internal/http/handlers"
	"course-go-avito-dispatch/internal/http/pprofserver"
	"course-go-avito-dispatch/internal/http/router"
	"course-go-avito-dispatch/internal/logx"
	"course-go-avito-dispatch/internal/repository"
	dispatchsvc "course-go-avito-dispatch/internal/service/dispatch"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
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
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
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
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
		newMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type sequencerIn struct {
	dig.In
	Ctx        context.Context
	Registry   *dispatchseq.Registry
	Transport  *notify.RetryingTransport
	Mappings   *repository.MappingRepo
	Deliveries *repository.DeliveryRepo
	Cfg        *config.Config
	Logger     logx.Logger
	Exhausted  prometheus.Counter `name:"dispatch_exhausted_total"`
	Accepted   prometheus.Counter `name:"deliveries_accepted_total"`
}

type transportIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"notify_retries_total"`
}

func newNotifyTransport(in transportIn) *notify.RetryingTransport {
	var base notify.Transport
	if tw := notify.NewTwilio(in.Cfg.Twilio, nil); tw != nil {
		base = tw
	} else {
		in.Logger.Warn("twilio is not configured, offers are logged only")
		base = notify.NewLogTransport(in.Logger)
	}
	d := in.Cfg.Dispatch
	return notify.NewRetryingTransport(base, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts:    d.SendAttempts,
		BaseDelay:      d.SendBaseDelay,
		MaxDelay:       d.SendMaxDelay,
		AttemptTimeout: d.SendTimeout,
	})
}

func newSequencer(in sequencerIn) *dispatchseq.Sequencer {
	d := in.Cfg.Dispatch
	return dispatchseq.NewSequencer(
		in.Ctx,
		in.Registry,
		in.Transport,
		in.Mappings,
		in.Deliveries,
		dispatchseq.RealScheduler{},
		dispatchseq.RealClock{},
		dispatchseq.Config{
			OfferWindow:         d.OfferWindow,
			FailureAdvanceDelay: d.FailureAdvanceDelay,
			MappingTTL:          d.MappingTTL,
		},
		in.Logger,
		in.Exhausted,
		in.Accepted,
	)
}

func registerDispatch(container *dig.Container) error {
	return provideAll(container,
		repository.NewRiderRepo,
		repository.NewDeliveryRepo,
		repository.NewMappingRepo,
		dispatchseq.NewRegistry,
		newNotifyTransport,
		newSequencer,
		func() time.Duration { return 3 * time.Second },
		func(
			riders *repository.RiderRepo,
			deliveries *repository.DeliveryRepo,
			seq *dispatchseq.Sequencer,
			timeout time.Duration,
			logger logx.Logger,
		) *dispatchsvc.Service {
			return dispatchsvc.NewService(riders, deliveries, seq, timeout, logger)
		},
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
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewWebhookHandler,
		func(cfg *config.Config) pprofserver.Config {
			return pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}
		},
		router.New,
		serverProvider,
	)
}
