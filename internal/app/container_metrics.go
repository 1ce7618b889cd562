package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"course-go-avito-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out
	RateLimitExceeded  prometheus.Counter `name:"rate_limit_exceeded_total"`
	NotifyRetries      prometheus.Counter `name:"notify_retries_total"`
	DispatchExhausted  prometheus.Counter `name:"dispatch_exhausted_total"`
	DeliveriesAccepted prometheus.Counter `name:"deliveries_accepted_total"`
}

func newMetrics() metricsOut {
	return metricsOut{
		RateLimitExceeded:  registerCounter(metrics.NewRateLimitExceededTotal()),
		NotifyRetries:      registerCounter(metrics.NewNotifyRetriesTotal()),
		DispatchExhausted:  registerCounter(metrics.NewDispatchExhaustedTotal()),
		DeliveriesAccepted: registerCounter(metrics.NewDeliveriesAcceptedTotal()),
	}
}

// registerCounter регистрирует счетчик; при повторной регистрации (второй
// контейнер в одном процессе) возвращает уже существующий.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}
