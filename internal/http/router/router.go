package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"course-go-avito-dispatch/internal/http/handlers"
	mw "course-go-avito-dispatch/internal/http/middleware"
	"course-go-avito-dispatch/internal/http/middleware/ratelimit"
	"course-go-avito-dispatch/internal/http/pprofserver"
	"course-go-avito-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	base *handlers.Handlers,
	dispatch *handlers.DispatchHandler,
	webhook *handlers.WebhookHandler,
	logger logx.Logger,
	rl *ratelimit.Middleware,
	pprofCfg pprofserver.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(mw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))

	r.Post("/dispatch", dispatch.Start)
	r.Post("/webhook/whatsapp", webhook.Inbound)

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/debug/pprof/*", pprofserver.Handler(pprofCfg))

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
