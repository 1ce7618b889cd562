package events

import (
	"context"
	"errors"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
)

// DispatchPort abstracts the subset of dispatch operations needed by the
// Processor when handling delivery events
type DispatchPort interface {
	Dispatch(ctx context.Context, deliveryID int64) (domain.DispatchResult, error)
	Cancel(ctx context.Context, deliveryID int64) error
}

// Processor processes delivery events
type Processor struct {
	dispatch DispatchPort
	factory  *actionFactory
}

// NewProcessor creates a new events.Processor
func NewProcessor(dispatch DispatchPort) *Processor {
	p := &Processor{dispatch: dispatch}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single events.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	_, err := p.dispatch.Dispatch(ctx, e.DeliveryID)
	// повторная доставка или уже назначена - не ошибка обработки
	if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	err := p.dispatch.Cancel(ctx, e.DeliveryID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
