package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
	"course-go-avito-dispatch/internal/logx"
)

// Service - use case for starting dispatches and resolving acceptances.
type Service struct {
	riders           CandidateSource
	deliveries       DeliverySource
	sequencer        Sequencer
	operationTimeout time.Duration
	logger           logx.Logger
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewService - creates a new dispatch Service.
func NewService(riders CandidateSource, deliveries DeliverySource, seq Sequencer, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		riders:           riders,
		deliveries:       deliveries,
		sequencer:        seq,
		operationTimeout: timeout,
		logger:           logger,
	}
}

// Dispatch starts offering the delivery to the area's available riders.
func (s *Service) Dispatch(ctx context.Context, deliveryID int64) (domain.DispatchResult, error) {
	if deliveryID <= 0 {
		return domain.DispatchResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return domain.DispatchResult{}, err
	}
	if d == nil {
		return domain.DispatchResult{}, apperr.ErrNotFound
	}
	if !d.Unassigned() {
		return domain.DispatchResult{}, apperr.ErrConflict
	}

	candidates, err := s.riders.ListCandidates(ctx, d.AreaID, d.ServiceKind)
	if err != nil {
		return domain.DispatchResult{}, fmt.Errorf("list candidates: %w", err)
	}

	if err := s.sequencer.Start(deliveryID, candidates); err != nil {
		return domain.DispatchResult{}, err
	}

	return domain.DispatchResult{
		DeliveryID: deliveryID,
		Candidates: len(candidates),
	}, nil
}

// Accept resolves an inbound affirmative reply from the phone number.
func (s *Service) Accept(ctx context.Context, phone string) (domain.AcceptResult, error) {
	phone = strings.TrimSpace(phone)
	if !domain.ValidatePhone(phone) {
		return domain.AcceptResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rider, err := s.riders.GetByPhone(ctx, phone)
	if err != nil {
		return domain.AcceptResult{}, err
	}
	if rider == nil {
		return domain.AcceptResult{}, apperr.ErrUnresolved
	}

	res, err := s.sequencer.Accept(ctx, phone, rider.ID)
	if err != nil {
		return domain.AcceptResult{}, err
	}

	s.logger.Info("rider assigned",
		logx.String("event", "rider_assigned"),
		logx.Int64("delivery_id", res.DeliveryID),
		logx.Int64("rider_id", res.RiderID),
	)
	return res, nil
}

// Cancel drops an in-flight dispatch for the delivery.
func (s *Service) Cancel(ctx context.Context, deliveryID int64) error {
	if deliveryID <= 0 {
		return apperr.ErrInvalid
	}
	if !s.sequencer.Cancel(deliveryID) {
		return apperr.ErrNotFound
	}
	return nil
}
