package queries

import (
	"time"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	SlotID        uuid.UUID
	Status        string
	HoldExpiresAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SlotView struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
}

type BookingView struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ServiceID          uuid.UUID
	ProviderID         uuid.UUID
	SlotID             uuid.UUID
	ProcessorPaymentID string
	Status             string
	CreatedAt          time.Time
}
