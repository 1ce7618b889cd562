package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"course-go-avito-dispatch/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingTransport
type RetryConfig struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// RetryingTransport wraps a Transport with bounded attempts, exponential
// backoff and a per-attempt timeout.
type RetryingTransport struct {
	next    Transport
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingTransport конструктор который проверяет, что next не nil и возвращает RetryingTransport
func NewRetryingTransport(next Transport, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingTransport {
	if next == nil {
		return nil
	}
	return &RetryingTransport{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// Send delivers the offer, retrying transient transport failures.
func (t *RetryingTransport) Send(ctx context.Context, phone string, offer Offer) error {
	var lastErr error
	for attempt := 1; attempt <= t.cfg.MaxAttempts; attempt++ {
		err := t.sendOnce(ctx, phone, offer)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == t.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(t.cfg.BaseDelay, t.cfg.MaxDelay, attempt)
		if t.retries != nil {
			t.retries.Inc()
		}
		t.logger.Warn("notify transport retry",
			logx.String("phone", phone),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, t.sleep, delay) {
			break
		}
	}
	return lastErr
}

func (t *RetryingTransport) sendOnce(ctx context.Context, phone string, offer Offer) error {
	if t.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.AttemptTimeout)
		defer cancel()
	}
	return t.next.Send(ctx, phone, offer)
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		return false
	}
	switch {
	case sendErr.StatusCode == http.StatusRequestTimeout,
		sendErr.StatusCode == http.StatusTooManyRequests,
		sendErr.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
