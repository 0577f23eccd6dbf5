package commands

import (
	"context"
	"log/slog"

	"slotbooking/internal/domain/booking"
	"slotbooking/internal/domain/payment"
	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Routing keys for the domain events emitted after a transition.
const (
	routingBookingConfirmed = "booking.confirmed"
	routingPaymentFailed    = "payment.failed"
)

// PaymentEventApplier drives the reservation/slot/booking state transitions
// for one processor callback. The webhook handler and the queue-drain worker
// share this exact logic.
//
// Apply returns an error only when the event could not be durably recorded;
// downstream transition failures are logged for manual reconciliation so the
// caller can still acknowledge the delivery and stop redelivery storms.
type PaymentEventApplier interface {
	Apply(ctx context.Context, event *PaymentEvent) error
}

type paymentEventApplierImpl struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	bookingRepo     BookingRepository
	tx              TxManager
	publisher       EventPublisher
}

func NewPaymentEventApplier(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	tx TxManager,
	publisher EventPublisher,
) PaymentEventApplier {
	return &paymentEventApplierImpl{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		bookingRepo:     bookingRepo,
		tx:              tx,
		publisher:       publisher,
	}
}

type correlation struct {
	ReservationID uuid.UUID
	SlotID        uuid.UUID
	ServiceID     uuid.UUID
	ProviderID    uuid.UUID
	UserID        uuid.UUID
}

func (u *paymentEventApplierImpl) Apply(ctx context.Context, event *PaymentEvent) error {
	corr, hasCorr := parseCorrelation(event.Metadata)

	if err := u.recordShadow(ctx, event, corr, hasCorr); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch event.Kind {
	case EventSucceeded:
		u.applySuccess(ctx, event, corr, hasCorr)
	case EventFailed, EventCanceled:
		u.applyFailure(ctx, event, corr, hasCorr)
	case EventProcessing, EventRequiresAction:
		// Shadow status update above is the whole effect.
	}
	return nil
}

// recordShadow durably persists the callback before any transition runs.
func (u *paymentEventApplierImpl) recordShadow(ctx context.Context, event *PaymentEvent, corr correlation, hasCorr bool) error {
	status := shadowStatus(event.Kind)

	if hasCorr {
		return u.paymentRepo.Upsert(ctx, &payment.Payment{
			ProcessorPaymentID: event.ProcessorPaymentID,
			UserID:             corr.UserID,
			ReservationID:      corr.ReservationID,
			AmountCents:        event.AmountCents,
			Currency:           event.Currency,
			Status:             status,
			RawPayload:         event.Raw,
		})
	}

	updated, err := u.paymentRepo.UpdateStatus(ctx, event.ProcessorPaymentID, status, event.Raw)
	if err != nil {
		return err
	}
	if !updated {
		slog.Warn("payment callback without correlation metadata or shadow row",
			"processor_payment_id", event.ProcessorPaymentID, "kind", event.Kind)
	}
	return nil
}

func (u *paymentEventApplierImpl) applySuccess(ctx context.Context, event *PaymentEvent, corr correlation, hasCorr bool) {
	if !hasCorr {
		slog.Error("success callback missing correlation metadata, manual reconciliation required",
			"processor_payment_id", event.ProcessorPaymentID)
		return
	}

	// Replays short-circuit on the booking row keyed by the payment id.
	if _, err := u.bookingRepo.FindByProcessorPaymentID(ctx, event.ProcessorPaymentID); err == nil {
		return
	} else if !infra.IsKind(err, infra.KindNotFound) {
		slog.Error("failed to check booking existence", "processor_payment_id", event.ProcessorPaymentID, "error", err)
		return
	}

	confirmable, err := u.confirmReservation(ctx, corr.ReservationID)
	if err != nil {
		slog.Error("failed to confirm reservation", "reservation_id", corr.ReservationID, "error", err)
		return
	}
	if !confirmable {
		slog.Error("payment succeeded for a reservation that is no longer confirmable, manual reconciliation required",
			"processor_payment_id", event.ProcessorPaymentID, "reservation_id", corr.ReservationID)
		return
	}

	created := false
	err = u.tx.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, txErr := u.slotRepo.TransitionStatus(ctx, tx, corr.SlotID, slot.StatusHold, slot.StatusBooked); txErr != nil {
			return txErr
		}
		var txErr error
		created, txErr = u.bookingRepo.CreateIfAbsent(ctx, tx, &booking.Booking{
			ID:                 uuid.New(),
			UserID:             corr.UserID,
			ServiceID:          corr.ServiceID,
			ProviderID:         corr.ProviderID,
			SlotID:             corr.SlotID,
			ProcessorPaymentID: event.ProcessorPaymentID,
			Status:             booking.StatusConfirmed,
		})
		return txErr
	})
	if err != nil {
		slog.Error("failed to materialize booking, manual reconciliation required",
			"processor_payment_id", event.ProcessorPaymentID, "reservation_id", corr.ReservationID, "error", err)
		return
	}

	if created {
		u.publish(ctx, routingBookingConfirmed, map[string]any{
			"processor_payment_id": event.ProcessorPaymentID,
			"reservation_id":       corr.ReservationID,
			"slot_id":              corr.SlotID,
			"user_id":              corr.UserID,
		})
	}
}

// confirmReservation flips HOLD -> CONFIRMED; a reservation that is already
// CONFIRMED (partial redelivery) still counts as confirmable, while one the
// reaper expired does not.
func (u *paymentEventApplierImpl) confirmReservation(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	confirmed, err := u.reservationRepo.TransitionStatus(ctx, nil, reservationID, reservation.StatusHold, reservation.StatusConfirmed)
	if err != nil {
		return false, err
	}
	if confirmed {
		return true, nil
	}

	res, err := u.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return false, err
	}
	return res.Status() == reservation.StatusConfirmed, nil
}

func (u *paymentEventApplierImpl) applyFailure(ctx context.Context, event *PaymentEvent, corr correlation, hasCorr bool) {
	if !hasCorr {
		return
	}

	expired, err := u.reservationRepo.TransitionStatus(ctx, nil, corr.ReservationID, reservation.StatusHold, reservation.StatusExpired)
	if err != nil {
		slog.Error("failed to expire reservation after payment failure",
			"reservation_id", corr.ReservationID, "error", err)
		return
	}
	if !expired {
		// Already confirmed, expired or cancelled; nothing to release here.
		return
	}

	// The hold we just expired still owns the slot, so the conditional
	// release cannot clobber another user's HOLD or a BOOKED slot.
	if _, err := u.slotRepo.TransitionStatus(ctx, nil, corr.SlotID, slot.StatusHold, slot.StatusAvailable); err != nil {
		slog.Error("failed to release slot after payment failure", "slot_id", corr.SlotID, "error", err)
		return
	}

	u.publish(ctx, routingPaymentFailed, map[string]any{
		"processor_payment_id": event.ProcessorPaymentID,
		"reservation_id":       corr.ReservationID,
		"slot_id":              corr.SlotID,
		"kind":                 event.Kind,
	})
}

func (u *paymentEventApplierImpl) publish(ctx context.Context, routingKey string, payload any) {
	if err := u.publisher.Publish(ctx, routingKey, payload); err != nil {
		slog.Warn("failed to publish domain event", "routing_key", routingKey, "error", err)
	}
}

func shadowStatus(kind EventKind) payment.Status {
	switch kind {
	case EventSucceeded:
		return payment.StatusSucceeded
	case EventFailed:
		return payment.StatusFailed
	case EventCanceled:
		return payment.StatusCanceled
	case EventRequiresAction:
		return payment.StatusRequiresAction
	default:
		return payment.StatusProcessing
	}
}

func parseCorrelation(metadata map[string]string) (correlation, bool) {
	var corr correlation
	ids := []struct {
		key  string
		dest *uuid.UUID
	}{
		{MetaReservationID, &corr.ReservationID},
		{MetaSlotID, &corr.SlotID},
		{MetaServiceID, &corr.ServiceID},
		{MetaProviderID, &corr.ProviderID},
		{MetaUserID, &corr.UserID},
	}
	for _, field := range ids {
		raw, ok := metadata[field.key]
		if !ok {
			return correlation{}, false
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return correlation{}, false
		}
		*field.dest = id
	}
	return corr, true
}
