//go:build unit

package commands_test

import (
	"context"
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

func TestReleaseExpiredHolds(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seedHeld := func(t *testing.T, slotRepo *fakeSlotRepo, reservationRepo *fakeReservationRepo, holdMinutes int) (*slot.Slot, *reservation.Reservation) {
		t.Helper()
		s, err := slot.NewSlot(uuid.New(), uuid.New(), now.Add(time.Hour), now.Add(2*time.Hour), now)
		require.NoError(t, err)
		slotRepo.seed(s)
		held, err := slotRepo.TransitionStatus(context.Background(), nil, s.ID(), slot.StatusAvailable, slot.StatusHold)
		require.NoError(t, err)
		require.True(t, held)

		res, err := reservation.NewHold(uuid.New(), s.ID(), holdMinutes, now)
		require.NoError(t, err)
		reservationRepo.seed(res)
		return s, res
	}

	t.Run("returns overdue holds to the pool", func(t *testing.T) {
		slotRepo := newFakeSlotRepo()
		reservationRepo := newFakeReservationRepo()
		clk := clock.NewMockClock(now)
		sut := commands.NewReaperCommands(reservationRepo, slotRepo, clk)

		overdueSlot, overdueRes := seedHeld(t, slotRepo, reservationRepo, 15)
		liveSlot, liveRes := seedHeld(t, slotRepo, reservationRepo, 60)

		clk.Add(30 * time.Minute)
		released, err := sut.ReleaseExpiredHolds(context.Background(), 100)
		require.NoError(t, err)

		assert.Equal(t, 1, released)
		assert.Equal(t, reservation.StatusExpired, reservationRepo.status(overdueRes.ID()))
		assert.Equal(t, slot.StatusAvailable, slotRepo.status(overdueSlot.ID()))
		assert.Equal(t, reservation.StatusHold, reservationRepo.status(liveRes.ID()))
		assert.Equal(t, slot.StatusHold, slotRepo.status(liveSlot.ID()))
	})

	t.Run("never releases a slot the webhook already booked", func(t *testing.T) {
		slotRepo := newFakeSlotRepo()
		reservationRepo := newFakeReservationRepo()
		clk := clock.NewMockClock(now)
		sut := commands.NewReaperCommands(reservationRepo, slotRepo, clk)

		bookedSlot, _ := seedHeld(t, slotRepo, reservationRepo, 15)
		booked, err := slotRepo.TransitionStatus(context.Background(), nil, bookedSlot.ID(), slot.StatusHold, slot.StatusBooked)
		require.NoError(t, err)
		require.True(t, booked)

		clk.Add(30 * time.Minute)
		released, err := sut.ReleaseExpiredHolds(context.Background(), 100)
		require.NoError(t, err)

		assert.Equal(t, 0, released)
		assert.Equal(t, slot.StatusBooked, slotRepo.status(bookedSlot.ID()))
	})

	t.Run("sweep with no overdue holds is a no-op", func(t *testing.T) {
		slotRepo := newFakeSlotRepo()
		reservationRepo := newFakeReservationRepo()
		sut := commands.NewReaperCommands(reservationRepo, slotRepo, clock.NewMockClock(now))

		seedHeld(t, slotRepo, reservationRepo, 15)

		released, err := sut.ReleaseExpiredHolds(context.Background(), 100)
		require.NoError(t, err)
		assert.Equal(t, 0, released)
	})
}
