package queries

import (
	"context"

	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	FindAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*SlotView, error)
}

type SlotQueries interface {
	ListAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	readStore SlotReadStore
}

func NewSlotQueries(readStore SlotReadStore) SlotQueries {
	return &slotQueriesImpl{readStore: readStore}
}

func (q *slotQueriesImpl) ListAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*SlotView, error) {
	views, err := q.readStore.FindAvailableByService(ctx, serviceID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
