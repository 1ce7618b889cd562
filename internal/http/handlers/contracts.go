package handlers

import (
	"context"

	"course-go-avito-dispatch/internal/domain"
	dispatchsvc "course-go-avito-dispatch/internal/service/dispatch"
)

type dispatchUsecase interface {
	Dispatch(ctx context.Context, deliveryID int64) (domain.DispatchResult, error)
	Accept(ctx context.Context, phone string) (domain.AcceptResult, error)
}

// NewDispatchUsecase wires a dispatch Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatchsvc.Service) dispatchUsecase {
	return svc
}
