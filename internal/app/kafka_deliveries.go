package app

import (
	"context"
	"errors"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/service/events"
	"course-go-avito-dispatch/internal/transport/kafka"
)

func makeDeliveriesKafka(p *events.Processor) kafka.HandleFunc {
	return func(ctx context.Context, e events.Event) error {
		err := p.Handle(ctx, e)
		// кривое событие не станет валидным от повторов
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
