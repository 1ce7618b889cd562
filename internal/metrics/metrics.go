package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewNotifyRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the notification transport
func NewNotifyRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_retries_total",
		Help: "Total number of retry attempts performed by the notification transport",
	})
}

// NewDispatchExhaustedTotal returns a Prometheus counter for the number of dispatches that ran out of candidates
func NewDispatchExhaustedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_exhausted_total",
		Help: "Total number of dispatches where every candidate was offered and none accepted",
	})
}

// NewDeliveriesAcceptedTotal returns a Prometheus counter for the number of deliveries accepted by a rider
func NewDeliveriesAcceptedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_accepted_total",
		Help: "Total number of deliveries accepted by a rider",
	})
}
