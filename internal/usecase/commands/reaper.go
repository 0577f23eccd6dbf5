package commands

import (
	"context"
	"log/slog"

	"slotbooking/internal/domain/slot"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/pkg/errs"
)

type ReaperCommands interface {
	// ReleaseExpiredHolds expires up to limit overdue HOLD reservations and
	// returns their slots to AVAILABLE. Without this sweep a hold whose
	// payment never completes would pin its slot forever.
	ReleaseExpiredHolds(ctx context.Context, limit int) (int, error)
}

type reaperCommandsImpl struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	clock           clock.Clock
}

func NewReaperCommands(reservationRepo ReservationRepository, slotRepo SlotRepository, clk clock.Clock) ReaperCommands {
	return &reaperCommandsImpl{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		clock:           clk,
	}
}

func (u *reaperCommandsImpl) ReleaseExpiredHolds(ctx context.Context, limit int) (int, error) {
	expired, err := u.reservationRepo.ExpireOverdue(ctx, u.clock.Now(), limit)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	released := 0
	for _, hold := range expired {
		// HOLD -> AVAILABLE only; a slot the webhook already booked is left
		// alone by the conditional update.
		ok, releaseErr := u.slotRepo.TransitionStatus(ctx, nil, hold.SlotID, slot.StatusHold, slot.StatusAvailable)
		if releaseErr != nil {
			slog.Error("failed to release slot for expired hold",
				"slot_id", hold.SlotID, "reservation_id", hold.ReservationID, "error", releaseErr)
			continue
		}
		if ok {
			released++
		}
	}
	return released, nil
}
