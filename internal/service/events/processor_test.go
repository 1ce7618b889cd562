package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
	"course-go-avito-dispatch/internal/service/events"
)

type fakeDispatch struct {
	dispatchFn func(context.Context, int64) (domain.DispatchResult, error)
	cancelFn   func(context.Context, int64) error

	dispatched []int64
	canceled   []int64
}

func (f *fakeDispatch) Dispatch(ctx context.Context, id int64) (domain.DispatchResult, error) {
	f.dispatched = append(f.dispatched, id)
	if f.dispatchFn == nil {
		return domain.DispatchResult{DeliveryID: id}, nil
	}
	return f.dispatchFn(ctx, id)
}

func (f *fakeDispatch) Cancel(ctx context.Context, id int64) error {
	f.canceled = append(f.canceled, id)
	if f.cancelFn == nil {
		return nil
	}
	return f.cancelFn(ctx, id)
}

func TestHandle_Created_StartsDispatch(t *testing.T) {
	t.Parallel()

	fd := &fakeDispatch{}
	p := events.NewProcessor(fd)

	err := p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "created"})
	require.NoError(t, err)
	require.Equal(t, []int64{7}, fd.dispatched)
}

func TestHandle_Created_ConflictIsSwallowed(t *testing.T) {
	t.Parallel()

	fd := &fakeDispatch{
		dispatchFn: func(context.Context, int64) (domain.DispatchResult, error) {
			return domain.DispatchResult{}, apperr.ErrConflict
		},
	}
	p := events.NewProcessor(fd)

	require.NoError(t, p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "created"}))
}

func TestHandle_Created_OtherErrorsPropagate(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db down")
	fd := &fakeDispatch{
		dispatchFn: func(context.Context, int64) (domain.DispatchResult, error) {
			return domain.DispatchResult{}, wantErr
		},
	}
	p := events.NewProcessor(fd)

	require.ErrorIs(t, p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "created"}), wantErr)
}

func TestHandle_Canceled_CancelsDispatch(t *testing.T) {
	t.Parallel()

	fd := &fakeDispatch{}
	p := events.NewProcessor(fd)

	require.NoError(t, p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "CANCELED "}))
	require.Equal(t, []int64{7}, fd.canceled)
}

func TestHandle_Canceled_NotFoundIsSwallowed(t *testing.T) {
	t.Parallel()

	fd := &fakeDispatch{
		cancelFn: func(context.Context, int64) error { return apperr.ErrNotFound },
	}
	p := events.NewProcessor(fd)

	require.NoError(t, p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "deleted"}))
}

func TestHandle_UnknownStatus_Ignored(t *testing.T) {
	t.Parallel()

	fd := &fakeDispatch{}
	p := events.NewProcessor(fd)

	require.NoError(t, p.Handle(context.Background(), events.Event{DeliveryID: 7, Status: "cooking"}))
	require.Empty(t, fd.dispatched)
	require.Empty(t, fd.canceled)
}
