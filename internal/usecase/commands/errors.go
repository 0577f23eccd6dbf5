package commands

import "slotbooking/internal/pkg/errs"

// Sentinel errors the handler layer maps onto HTTP status codes.
var (
	ErrSlotNotFound            = errs.New("slot not found")
	ErrSlotNotAvailable        = errs.New("slot not available")
	ErrInvalidHoldMinutes      = errs.New("invalid hold minutes")
	ErrInvalidSlotWindow       = errs.New("invalid slot time window")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrReservationNotHeld      = errs.New("reservation not held")
	ErrReservationExpired      = errs.New("reservation hold expired")
	ErrServiceNotFound         = errs.New("service not found")
	ErrNotAuthorized           = errs.New("not authorized")
	ErrPaymentProcessorFailed  = errs.New("payment processor request failed")
	ErrSignatureInvalid        = errs.New("webhook signature invalid")
	ErrDatabaseOperationFailed = errs.New("database operation failed")

	// ErrEventIgnored marks callback types that carry no state transition
	// for us (charge.*, payment_method.*, ...); handlers acknowledge them
	// without side effects.
	ErrEventIgnored = errs.New("event type ignored")
)
