package commands

import (
	"context"

	"slotbooking/internal/domain/payment"
	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

type InitiatePaymentResult struct {
	IntentID     string
	ClientSecret string
}

type PaymentCommands interface {
	InitiatePayment(ctx context.Context, userID, reservationID uuid.UUID) (*InitiatePaymentResult, error)
}

type paymentCommandsImpl struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	serviceRepo     ServiceRepository
	paymentRepo     PaymentRepository
	processor       PaymentProcessor
	clock           clock.Clock
}

func NewPaymentCommands(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	serviceRepo ServiceRepository,
	paymentRepo PaymentRepository,
	processor PaymentProcessor,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		serviceRepo:     serviceRepo,
		paymentRepo:     paymentRepo,
		processor:       processor,
		clock:           clk,
	}
}

// InitiatePayment creates the processor-side payment object for a live hold
// and records the local shadow row. The idempotency key is derived from the
// reservation id, so retried requests reuse the same processor object.
func (u *paymentCommandsImpl) InitiatePayment(ctx context.Context, userID, reservationID uuid.UUID) (*InitiatePaymentResult, error) {
	res, err := u.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !res.IsOwnedBy(userID) {
		return nil, ErrNotAuthorized
	}
	if !res.IsHeld() {
		return nil, ErrReservationNotHeld
	}
	// An expired hold must never become payable; confirming it would book a
	// slot the reaper may already have released.
	if !res.IsPayable(u.clock.Now()) {
		return nil, ErrReservationExpired
	}

	slotEntity, err := u.slotRepo.FindByID(ctx, res.SlotID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	svc, err := u.serviceRepo.FindByID(ctx, slotEntity.ServiceID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	intent, err := u.processor.CreateIntent(ctx, CreateIntentParams{
		AmountCents:    svc.PriceCents,
		Currency:       svc.Currency,
		IdempotencyKey: "reservation-" + reservationID.String(),
		Metadata: map[string]string{
			MetaReservationID: reservationID.String(),
			MetaSlotID:        slotEntity.ID().String(),
			MetaServiceID:     svc.ID.String(),
			MetaProviderID:    svc.ProviderID.String(),
			MetaUserID:        userID.String(),
		},
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentProcessorFailed)
	}

	shadow := &payment.Payment{
		ProcessorPaymentID: intent.ID,
		UserID:             userID,
		ReservationID:      reservationID,
		AmountCents:        svc.PriceCents,
		Currency:           svc.Currency,
		Status:             payment.StatusProcessing,
	}
	if err := u.paymentRepo.Upsert(ctx, shadow); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &InitiatePaymentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
