package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

const slotLockPrefix = "slot-lock:"

type ReserveSlotResult struct {
	ReservationID uuid.UUID
	HoldExpiresAt time.Time
}

type ReservationCommands interface {
	ReserveSlot(ctx context.Context, userID, slotID uuid.UUID, holdMinutes int) (*ReserveSlotResult, error)
}

type reservationCommandsImpl struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	tx              TxManager
	lock            SlotLock
	lockTTL         time.Duration
	clock           clock.Clock
}

func NewReservationCommands(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	tx TxManager,
	lock SlotLock,
	lockTTL time.Duration,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		tx:              tx,
		lock:            lock,
		lockTTL:         lockTTL,
		clock:           clk,
	}
}

// ReserveSlot places a time-bounded exclusive hold on an AVAILABLE slot.
// The transaction couples the conditional slot flip with the reservation
// insert, so of any number of concurrent callers exactly one wins and the
// rest observe ErrSlotNotAvailable.
func (u *reservationCommandsImpl) ReserveSlot(ctx context.Context, userID, slotID uuid.UUID, holdMinutes int) (*ReserveSlotResult, error) {
	hold, err := reservation.NewHold(userID, slotID, holdMinutes, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidHoldMinutes)
	}

	// Opportunistic serialization; the atomic update below stays the source
	// of truth whether or not the lock was obtained.
	lockKey := slotLockPrefix + slotID.String()
	token, acquired, lockErr := u.lock.TryAcquire(ctx, lockKey, u.lockTTL)
	if lockErr != nil {
		slog.Warn("slot lock unavailable, proceeding without it", "slot_id", slotID, "error", lockErr)
	}
	if acquired {
		defer func() {
			if releaseErr := u.lock.Release(ctx, lockKey, token); releaseErr != nil {
				slog.Warn("failed to release slot lock", "slot_id", slotID, "error", releaseErr)
			}
		}()
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		held, txErr := u.slotRepo.TransitionStatus(ctx, tx, slotID, slot.StatusAvailable, slot.StatusHold)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if !held {
			return u.classifyHoldFailure(ctx, slotID)
		}

		if _, txErr = u.reservationRepo.Create(ctx, tx, hold); txErr != nil {
			if infra.IsKind(txErr, infra.KindConflict) {
				return ErrSlotNotAvailable
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ReserveSlotResult{
		ReservationID: hold.ID(),
		HoldExpiresAt: hold.HoldExpiresAt(),
	}, nil
}

func (u *reservationCommandsImpl) classifyHoldFailure(ctx context.Context, slotID uuid.UUID) error {
	if _, err := u.slotRepo.FindByID(ctx, slotID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSlotNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	// Slot exists but was not AVAILABLE: lost the race or already booked.
	return ErrSlotNotAvailable
}
