package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Booking is the durable commercial record created exactly once per
// successful payment. ProcessorPaymentID is the idempotency boundary: the
// unique constraint on it guarantees that replaying a success callback can
// never materialize a second booking.
type Booking struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ServiceID          uuid.UUID
	ProviderID         uuid.UUID
	SlotID             uuid.UUID
	ProcessorPaymentID string
	Status             Status
	CreatedAt          time.Time
}
