//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAvailableSlot(t *testing.T, repo *fakeSlotRepo, now time.Time) *slot.Slot {
	t.Helper()
	s, err := slot.NewSlot(uuid.New(), uuid.New(), now.Add(time.Hour), now.Add(2*time.Hour), now)
	require.NoError(t, err)
	repo.seed(s)
	return s
}

func TestReserveSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	newSUT := func(lock *fakeSlotLock) (commands.ReservationCommands, *fakeSlotRepo, *fakeReservationRepo) {
		slotRepo := newFakeSlotRepo()
		reservationRepo := newFakeReservationRepo()
		sut := commands.NewReservationCommands(
			slotRepo, reservationRepo, fakeTxManager{}, lock, 30*time.Second, clock.NewMockClock(now),
		)
		return sut, slotRepo, reservationRepo
	}

	t.Run("success: holds the slot and creates the reservation", func(t *testing.T) {
		lock := &fakeSlotLock{acquired: true}
		sut, slotRepo, reservationRepo := newSUT(lock)
		s := seedAvailableSlot(t, slotRepo, now)

		result, err := sut.ReserveSlot(context.Background(), userID, s.ID(), 0)
		require.NoError(t, err)

		assert.Equal(t, now.Add(reservation.DefaultHoldMinutes*time.Minute), result.HoldExpiresAt)
		assert.Equal(t, slot.StatusHold, slotRepo.status(s.ID()))
		assert.Equal(t, reservation.StatusHold, reservationRepo.status(result.ReservationID))
		assert.Equal(t, 1, lock.acquires)
		assert.Equal(t, 1, lock.releases)
		assert.Equal(t, "slot-lock:"+s.ID().String(), lock.lastKey)
	})

	t.Run("error: unknown slot", func(t *testing.T) {
		sut, _, _ := newSUT(&fakeSlotLock{acquired: true})

		_, err := sut.ReserveSlot(context.Background(), userID, uuid.New(), 0)
		assert.ErrorIs(t, err, commands.ErrSlotNotFound)
	})

	t.Run("error: slot already held", func(t *testing.T) {
		sut, slotRepo, _ := newSUT(&fakeSlotLock{acquired: true})
		s := seedAvailableSlot(t, slotRepo, now)

		_, err := sut.ReserveSlot(context.Background(), userID, s.ID(), 0)
		require.NoError(t, err)

		_, err = sut.ReserveSlot(context.Background(), uuid.New(), s.ID(), 0)
		assert.ErrorIs(t, err, commands.ErrSlotNotAvailable)
	})

	t.Run("error: hold minutes out of range", func(t *testing.T) {
		sut, slotRepo, _ := newSUT(&fakeSlotLock{acquired: true})
		s := seedAvailableSlot(t, slotRepo, now)

		_, err := sut.ReserveSlot(context.Background(), userID, s.ID(), reservation.MaxHoldMinutes+1)
		assert.ErrorIs(t, err, commands.ErrInvalidHoldMinutes)
		assert.Equal(t, slot.StatusAvailable, slotRepo.status(s.ID()))
	})

	t.Run("lock outage does not block the reservation", func(t *testing.T) {
		lock := &fakeSlotLock{err: assert.AnError}
		sut, slotRepo, _ := newSUT(lock)
		s := seedAvailableSlot(t, slotRepo, now)

		result, err := sut.ReserveSlot(context.Background(), userID, s.ID(), 0)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.ReservationID)
		assert.Equal(t, 0, lock.releases)
	})

	t.Run("lock held by someone else still reaches the atomic update", func(t *testing.T) {
		sut, slotRepo, _ := newSUT(&fakeSlotLock{acquired: false})
		s := seedAvailableSlot(t, slotRepo, now)

		_, err := sut.ReserveSlot(context.Background(), userID, s.ID(), 0)
		require.NoError(t, err)
		assert.Equal(t, slot.StatusHold, slotRepo.status(s.ID()))
	})

	t.Run("exactly one of many concurrent callers wins", func(t *testing.T) {
		sut, slotRepo, _ := newSUT(&fakeSlotLock{acquired: false})
		s := seedAvailableSlot(t, slotRepo, now)

		const attempts = 20
		var wg sync.WaitGroup
		results := make([]error, attempts)

		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = sut.ReserveSlot(context.Background(), uuid.New(), s.ID(), 0)
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range results {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, commands.ErrSlotNotAvailable)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, slot.StatusHold, slotRepo.status(s.ID()))
	})
}
