package queries

import (
	"context"

	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrBookingNotFound     = errs.New("booking not found")
	ErrQueryFailed         = errs.New("query failed")
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.readStore.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
