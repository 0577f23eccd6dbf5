//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("applies the verified event inline when the queue is disabled", func(t *testing.T) {
		f := newApplierFixture(t, now)
		proc := &fakeProcessor{event: f.event(commands.EventSucceeded)}
		sut := commands.NewWebhookCommands(proc, f.sut, &fakeEventQueue{}, false)

		require.NoError(t, sut.HandleCallback(context.Background(), payload, "sig"))

		assert.Equal(t, reservation.StatusConfirmed, f.reservationRepo.status(f.reservation.ID()))
		assert.Equal(t, 1, f.bookingRepo.count())
	})

	t.Run("enqueues instead of applying when the queue is enabled", func(t *testing.T) {
		f := newApplierFixture(t, now)
		proc := &fakeProcessor{event: f.event(commands.EventSucceeded)}
		queue := &fakeEventQueue{}
		sut := commands.NewWebhookCommands(proc, f.sut, queue, true)

		require.NoError(t, sut.HandleCallback(context.Background(), payload, "sig"))

		assert.Len(t, queue.events, 1)
		assert.Equal(t, reservation.StatusHold, f.reservationRepo.status(f.reservation.ID()))
		assert.Equal(t, 0, f.bookingRepo.count())
	})

	t.Run("falls back to inline application on queue outage", func(t *testing.T) {
		f := newApplierFixture(t, now)
		proc := &fakeProcessor{event: f.event(commands.EventSucceeded)}
		queue := &fakeEventQueue{enqueueErr: assert.AnError}
		sut := commands.NewWebhookCommands(proc, f.sut, queue, true)

		require.NoError(t, sut.HandleCallback(context.Background(), payload, "sig"))

		assert.Empty(t, queue.events)
		assert.Equal(t, 1, f.bookingRepo.count())
	})

	t.Run("invalid signature is rejected with no side effects", func(t *testing.T) {
		f := newApplierFixture(t, now)
		proc := &fakeProcessor{verifyErr: commands.ErrSignatureInvalid}
		sut := commands.NewWebhookCommands(proc, f.sut, &fakeEventQueue{}, false)

		err := sut.HandleCallback(context.Background(), payload, "bad-sig")
		assert.ErrorIs(t, err, commands.ErrSignatureInvalid)

		assert.Equal(t, reservation.StatusHold, f.reservationRepo.status(f.reservation.ID()))
		assert.Equal(t, 0, f.bookingRepo.count())
	})

	t.Run("irrelevant event types are acknowledged silently", func(t *testing.T) {
		f := newApplierFixture(t, now)
		proc := &fakeProcessor{verifyErr: commands.ErrEventIgnored}
		sut := commands.NewWebhookCommands(proc, f.sut, &fakeEventQueue{}, false)

		require.NoError(t, sut.HandleCallback(context.Background(), payload, "sig"))
		assert.Equal(t, 0, f.bookingRepo.count())
	})
}
