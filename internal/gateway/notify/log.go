package notify

import (
	"context"

	"course-go-avito-dispatch/internal/logx"
)

// LogTransport писем не шлет, только логирует. Для локального запуска без
// учетки Twilio.
type LogTransport struct {
	logger logx.Logger
}

// NewLogTransport creates a LogTransport.
func NewLogTransport(logger logx.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// Send logs the offer instead of delivering it and always succeeds.
func (t *LogTransport) Send(_ context.Context, phone string, offer Offer) error {
	t.logger.Info("offer (log transport)",
		logx.String("phone", phone),
		logx.Int64("delivery_id", offer.DeliveryID),
		logx.String("body", offerBody(offer)),
	)
	return nil
}
