package dispatch

import (
	"context"
	"time"

	"course-go-avito-dispatch/internal/domain"
	"course-go-avito-dispatch/internal/gateway/notify"
)

// transport is the outbound notification port (already retry-wrapped).
type transport interface {
	Send(ctx context.Context, phone string, offer notify.Offer) error
}

// mappingStore is the durable phone -> delivery correlation port.
type mappingStore interface {
	Upsert(ctx context.Context, phone string, deliveryID int64, expiresAt time.Time) error
	Resolve(ctx context.Context, phone string) (*domain.PhoneMapping, error)
}

// deliveryStore is the subset of delivery persistence the sequencer needs on
// the acceptance path.
type deliveryStore interface {
	MarkAssigned(ctx context.Context, deliveryID, riderID int64) (bool, error)
}

type counter interface {
	Inc()
}
