//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"course-go-avito-dispatch/internal/domain"
)

// CandidateSource lists riders eligible for a delivery, ranked by the query.
type CandidateSource interface {
	ListCandidates(ctx context.Context, areaID int64, kind domain.ServiceKind) ([]domain.Candidate, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Rider, error)
}

// DeliverySource reads deliveries for dispatch preconditions.
type DeliverySource interface {
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
}

// Sequencer is the offer state machine owned by the DI root.
type Sequencer interface {
	Start(deliveryID int64, candidates []domain.Candidate) error
	Accept(ctx context.Context, phone string, riderID int64) (domain.AcceptResult, error)
	Cancel(deliveryID int64) bool
}
