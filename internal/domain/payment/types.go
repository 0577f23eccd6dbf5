package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProcessing     Status = "PROCESSING"
	StatusRequiresAction Status = "REQUIRES_ACTION"
	StatusSucceeded      Status = "SUCCEEDED"
	StatusFailed         Status = "FAILED"
	StatusCanceled       Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status may no longer change. Upserts never
// regress a terminal status; replayed callbacks are absorbed silently.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

// Payment is the local shadow of a processor-side payment object, keyed by the
// processor's own payment identifier. The raw callback payload is retained
// for audit and reconciliation.
type Payment struct {
	ProcessorPaymentID string
	UserID             uuid.UUID
	ReservationID      uuid.UUID
	AmountCents        int64
	Currency           string
	Status             Status
	RawPayload         []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
