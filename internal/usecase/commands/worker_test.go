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

func TestDrainQueue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("applies queued events and reports the count", func(t *testing.T) {
		f := newApplierFixture(t, now)
		queue := &fakeEventQueue{}
		require.NoError(t, queue.Enqueue(context.Background(), f.event(commands.EventSucceeded)))
		sut := commands.NewWorkerCommands(queue, f.sut, 50)

		processed, err := sut.DrainQueue(context.Background(), 10)
		require.NoError(t, err)

		assert.Equal(t, 1, processed)
		assert.Equal(t, reservation.StatusConfirmed, f.reservationRepo.status(f.reservation.ID()))
		assert.Empty(t, queue.events)
	})

	t.Run("respects the batch bound", func(t *testing.T) {
		f := newApplierFixture(t, now)
		queue := &fakeEventQueue{}
		for range 5 {
			require.NoError(t, queue.Enqueue(context.Background(), f.event(commands.EventProcessing)))
		}
		sut := commands.NewWorkerCommands(queue, f.sut, 50)

		processed, err := sut.DrainQueue(context.Background(), 3)
		require.NoError(t, err)

		assert.Equal(t, 3, processed)
		assert.Len(t, queue.events, 2)
	})

	t.Run("non-positive bound selects the configured default", func(t *testing.T) {
		f := newApplierFixture(t, now)
		queue := &fakeEventQueue{}
		for range 4 {
			require.NoError(t, queue.Enqueue(context.Background(), f.event(commands.EventProcessing)))
		}
		sut := commands.NewWorkerCommands(queue, f.sut, 2)

		processed, err := sut.DrainQueue(context.Background(), 0)
		require.NoError(t, err)

		assert.Equal(t, 2, processed)
		assert.Len(t, queue.events, 2)
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		f := newApplierFixture(t, now)
		sut := commands.NewWorkerCommands(&fakeEventQueue{}, f.sut, 50)

		processed, err := sut.DrainQueue(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, 0, processed)
	})
}
