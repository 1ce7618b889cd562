package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
	"course-go-avito-dispatch/internal/gateway/notify"
	"course-go-avito-dispatch/internal/logx"
)

// Config stores the sequencing policy.
type Config struct {
	OfferWindow         time.Duration // acceptance window after a successful notify
	FailureAdvanceDelay time.Duration // delay before the next candidate after a failed notify
	MappingTTL          time.Duration
}

// Sequencer offers a delivery to ranked candidates one at a time. Within one
// offer the steps are strictly sequential: the next candidate is never
// contacted before the current one's outcome is known. Across deliveries
// offers progress independently.
type Sequencer struct {
	reg        *Registry
	transport  transport
	mappings   mappingStore
	deliveries deliveryStore
	sched      Scheduler
	clock      Clock
	cfg        Config
	logger     logx.Logger
	exhausted  prometheus.Counter
	accepted   prometheus.Counter

	// baseCtx owns the async notify steps, which outlive the request that
	// started the dispatch.
	baseCtx context.Context
}

// NewSequencer creates a Sequencer bound to the process lifecycle ctx.
func NewSequencer(
	ctx context.Context,
	reg *Registry,
	t transport,
	mappings mappingStore,
	deliveries deliveryStore,
	sched Scheduler,
	clock Clock,
	cfg Config,
	logger logx.Logger,
	exhausted, accepted prometheus.Counter,
) *Sequencer {
	if sched == nil {
		sched = RealScheduler{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Sequencer{
		reg:        reg,
		transport:  t,
		mappings:   mappings,
		deliveries: deliveries,
		sched:      sched,
		clock:      clock,
		cfg:        cfg,
		logger:     logger,
		exhausted:  exhausted,
		accepted:   accepted,
		baseCtx:    ctx,
	}
}

// Start begins offering the delivery to the candidates, in order. An empty
// candidate list is a valid terminal outcome, not an error. A second Start
// for the same delivery while an offer is in flight is a conflict.
func (s *Sequencer) Start(deliveryID int64, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		s.logger.Info("no available riders",
			logx.Int64("delivery_id", deliveryID),
		)
		return nil
	}

	_, ok := s.reg.insert(deliveryID, candidates)
	if !ok {
		return fmt.Errorf("dispatch for delivery %d already in flight: %w", deliveryID, apperr.ErrConflict)
	}

	s.logger.Info("dispatch started",
		logx.Int64("delivery_id", deliveryID),
		logx.Int("candidates", len(candidates)),
	)

	go s.notify(deliveryID, 0, 0)
	return nil
}

// notify runs one per-candidate offer step: send, then either arm the
// acceptance window (success) or schedule a quick advance (failure). The
// epoch captured at launch guards against mutating an offer that was
// accepted, canceled or advanced while the send was in flight.
func (s *Sequencer) notify(deliveryID int64, cursor int, epoch uint64) {
	var cand domain.Candidate
	live := false
	s.reg.withLock(func() {
		o, ok := s.reg.get(deliveryID)
		if !ok || o.epoch != epoch || o.cursor != cursor {
			return
		}
		cand = o.candidates[cursor]
		live = true
	})
	if !live {
		return
	}

	err := s.transport.Send(s.baseCtx, cand.Phone, notify.Offer{
		DeliveryID: deliveryID,
		RiderName:  cand.Name,
	})
	if err != nil {
		// кандидат так и не получил предложение - не ждем все окно
		s.logger.Warn("notify failed, advancing",
			logx.Int64("delivery_id", deliveryID),
			logx.Int64("rider_id", cand.RiderID),
			logx.Int("cursor", cursor),
			logx.Any("err", err),
		)
		s.arm(deliveryID, epoch, s.cfg.FailureAdvanceDelay)
		return
	}

	// The mapping must exist before the window opens, otherwise an instant
	// reply could not be resolved. A failed write is non-fatal: the rider was
	// notified, the window still arms, only correlation may be lost.
	expiresAt := s.clock.Now().Add(s.cfg.MappingTTL)
	if err := s.mappings.Upsert(s.baseCtx, cand.Phone, deliveryID, expiresAt); err != nil {
		s.logger.Error("mapping upsert failed",
			logx.Int64("delivery_id", deliveryID),
			logx.String("phone", cand.Phone),
			logx.Any("err", err),
		)
	}

	s.logger.Info("rider notified",
		logx.Int64("delivery_id", deliveryID),
		logx.Int64("rider_id", cand.RiderID),
		logx.Int("cursor", cursor),
	)
	s.arm(deliveryID, epoch, s.cfg.OfferWindow)
}

// arm schedules the advance to the next candidate, unless the offer moved on.
func (s *Sequencer) arm(deliveryID int64, epoch uint64, after time.Duration) {
	s.reg.withLock(func() {
		o, ok := s.reg.get(deliveryID)
		if !ok || o.epoch != epoch {
			return
		}
		o.timer = s.sched.Schedule(after, func() {
			s.advance(deliveryID, epoch)
		})
	})
}

// advance moves the offer to the next candidate or ends it as exhausted.
// Idempotent per epoch: a stale timer firing after an acceptance already
// resolved the offer is a no-op.
func (s *Sequencer) advance(deliveryID int64, epoch uint64) {
	var (
		nextCursor int
		nextEpoch  uint64
		done       bool
		live       bool
	)
	s.reg.withLock(func() {
		o, ok := s.reg.get(deliveryID)
		if !ok || o.epoch != epoch {
			return
		}
		live = true
		if o.timer != nil {
			o.timer.Stop()
			o.timer = nil
		}
		o.cursor++
		o.epoch++
		if o.cursor >= len(o.candidates) {
			s.reg.remove(o)
			done = true
			return
		}
		nextCursor = o.cursor
		nextEpoch = o.epoch
	})
	if !live {
		return
	}
	if done {
		s.logger.Info("all riders notified, none accepted",
			logx.Int64("delivery_id", deliveryID),
		)
		if s.exhausted != nil {
			s.exhausted.Inc()
		}
		return
	}
	s.notify(deliveryID, nextCursor, nextEpoch)
}

// Accept resolves an inbound affirmative reply from the phone to the offered
// delivery and claims it for the rider. Duplicate acceptances fail on the
// claim and leave the registry untouched.
func (s *Sequencer) Accept(ctx context.Context, phone string, riderID int64) (domain.AcceptResult, error) {
	m, err := s.mappings.Resolve(ctx, phone)
	if err != nil {
		return domain.AcceptResult{}, fmt.Errorf("resolve acceptance: %w", err)
	}
	if m == nil {
		return domain.AcceptResult{}, apperr.ErrUnresolved
	}
	if !m.Live(s.clock.Now()) {
		s.logger.Debug("acceptance for expired mapping",
			logx.String("phone", phone),
			logx.Int64("delivery_id", m.DeliveryID),
			logx.Time("expires_at", m.ExpiresAt),
		)
		return domain.AcceptResult{}, apperr.ErrUnresolved
	}

	// The conditional claim is the authoritative unassigned check: a stale
	// mapping whose delivery already moved to another rider loses here.
	claimed, err := s.deliveries.MarkAssigned(ctx, m.DeliveryID, riderID)
	if err != nil {
		return domain.AcceptResult{}, fmt.Errorf("claim delivery %d: %w", m.DeliveryID, err)
	}
	if !claimed {
		return domain.AcceptResult{}, apperr.ErrConflict
	}

	s.reg.withLock(func() {
		if o, ok := s.reg.get(m.DeliveryID); ok {
			s.reg.remove(o)
		}
	})

	if s.accepted != nil {
		s.accepted.Inc()
	}
	s.logger.Info("delivery accepted",
		logx.Int64("delivery_id", m.DeliveryID),
		logx.Int64("rider_id", riderID),
	)
	return domain.AcceptResult{DeliveryID: m.DeliveryID, RiderID: riderID}, nil
}

// Cancel drops the in-flight offer for the delivery, if any. Same
// cancel-timer-and-remove path an acceptance takes.
func (s *Sequencer) Cancel(deliveryID int64) bool {
	canceled := false
	s.reg.withLock(func() {
		if o, ok := s.reg.get(deliveryID); ok {
			s.reg.remove(o)
			canceled = true
		}
	})
	if canceled {
		s.logger.Info("dispatch canceled",
			logx.Int64("delivery_id", deliveryID),
		)
	}
	return canceled
}
