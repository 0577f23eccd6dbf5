//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbooking/internal/domain/payment"
	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	sut             commands.PaymentCommands
	slotRepo        *fakeSlotRepo
	reservationRepo *fakeReservationRepo
	paymentRepo     *fakePaymentRepo
	processor       *fakeProcessor
	clock           *clock.MockClock

	userID      uuid.UUID
	slotEntity  *slot.Slot
	reservation *reservation.Reservation
	service     *commands.ServiceSnapshot
}

func newPaymentFixture(t *testing.T, now time.Time) *paymentFixture {
	t.Helper()

	slotRepo := newFakeSlotRepo()
	reservationRepo := newFakeReservationRepo()
	serviceRepo := newFakeServiceRepo()
	paymentRepo := newFakePaymentRepo()
	processor := &fakeProcessor{
		intent: &commands.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret", Status: "requires_payment_method"},
	}
	clk := clock.NewMockClock(now)

	providerID := uuid.New()
	serviceID := uuid.New()
	userID := uuid.New()

	s, err := slot.NewSlot(providerID, serviceID, now.Add(time.Hour), now.Add(2*time.Hour), now)
	require.NoError(t, err)
	slotRepo.seed(s)

	res, err := reservation.NewHold(userID, s.ID(), 15, now)
	require.NoError(t, err)
	reservationRepo.seed(res)

	svc := &commands.ServiceSnapshot{
		ID:         serviceID,
		ProviderID: providerID,
		Name:       "haircut",
		PriceCents: 4500,
		Currency:   "usd",
	}
	serviceRepo.services[serviceID] = svc

	return &paymentFixture{
		sut:             commands.NewPaymentCommands(reservationRepo, slotRepo, serviceRepo, paymentRepo, processor, clk),
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		processor:       processor,
		clock:           clk,
		userID:          userID,
		slotEntity:      s,
		reservation:     res,
		service:         svc,
	}
}

func TestInitiatePayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success: creates the intent and the shadow record", func(t *testing.T) {
		f := newPaymentFixture(t, now)

		result, err := f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		require.NoError(t, err)

		assert.Equal(t, "pi_123", result.IntentID)
		assert.Equal(t, "pi_123_secret", result.ClientSecret)

		assert.Equal(t, "reservation-"+f.reservation.ID().String(), f.processor.lastParams.IdempotencyKey)
		assert.Equal(t, f.service.PriceCents, f.processor.lastParams.AmountCents)
		assert.Equal(t, f.service.Currency, f.processor.lastParams.Currency)
		assert.Equal(t, f.reservation.ID().String(), f.processor.lastParams.Metadata[commands.MetaReservationID])
		assert.Equal(t, f.slotEntity.ID().String(), f.processor.lastParams.Metadata[commands.MetaSlotID])
		assert.Equal(t, f.userID.String(), f.processor.lastParams.Metadata[commands.MetaUserID])

		shadow, err := f.paymentRepo.FindByProcessorID(context.Background(), "pi_123")
		require.NoError(t, err)
		assert.Equal(t, payment.StatusProcessing, shadow.Status)
		assert.Equal(t, f.reservation.ID(), shadow.ReservationID)
	})

	t.Run("retry reuses the reservation-derived idempotency key", func(t *testing.T) {
		f := newPaymentFixture(t, now)

		first, err := f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		require.NoError(t, err)
		firstKey := f.processor.lastParams.IdempotencyKey

		second, err := f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		require.NoError(t, err)

		assert.Equal(t, firstKey, f.processor.lastParams.IdempotencyKey)
		assert.Equal(t, first.IntentID, second.IntentID)
	})

	t.Run("error: unknown reservation", func(t *testing.T) {
		f := newPaymentFixture(t, now)

		_, err := f.sut.InitiatePayment(context.Background(), f.userID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("error: reservation owned by another user", func(t *testing.T) {
		f := newPaymentFixture(t, now)

		_, err := f.sut.InitiatePayment(context.Background(), uuid.New(), f.reservation.ID())
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("error: reservation no longer held", func(t *testing.T) {
		f := newPaymentFixture(t, now)
		_, err := f.reservationRepo.TransitionStatus(context.Background(), nil, f.reservation.ID(), reservation.StatusHold, reservation.StatusCancelled)
		require.NoError(t, err)

		_, err = f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		assert.ErrorIs(t, err, commands.ErrReservationNotHeld)
	})

	t.Run("error: hold deadline passed", func(t *testing.T) {
		f := newPaymentFixture(t, now)
		f.clock.Add(16 * time.Minute)

		_, err := f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		assert.ErrorIs(t, err, commands.ErrReservationExpired)
	})

	t.Run("error: processor outage", func(t *testing.T) {
		f := newPaymentFixture(t, now)
		f.processor.createErr = assert.AnError

		_, err := f.sut.InitiatePayment(context.Background(), f.userID, f.reservation.ID())
		assert.ErrorIs(t, err, commands.ErrPaymentProcessorFailed)

		_, err = f.paymentRepo.FindByProcessorID(context.Background(), "pi_123")
		assert.Error(t, err, "no shadow row may exist when the processor call failed")
	})
}
