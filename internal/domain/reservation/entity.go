package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidHoldMinutes = errors.New("invalid hold minutes")
	ErrNotHeld            = errors.New("reservation is not held")
	ErrAlreadyConfirmed   = errors.New("reservation already confirmed")
	ErrHoldExpired        = errors.New("reservation hold expired")
)

const (
	DefaultHoldMinutes = 15
	MaxHoldMinutes     = 60
)

type Status string

const (
	StatusHold      Status = "HOLD"
	StatusConfirmed Status = "CONFIRMED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// Reservation is a time-bounded exclusive claim on a slot by a user.
// It is created in HOLD and only ever moves to CONFIRMED, EXPIRED or
// CANCELLED; rows are never deleted.
type Reservation struct {
	id            uuid.UUID
	userID        uuid.UUID
	slotID        uuid.UUID
	status        Status
	holdExpiresAt time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewHold(userID, slotID uuid.UUID, holdMinutes int, now time.Time) (*Reservation, error) {
	if holdMinutes == 0 {
		holdMinutes = DefaultHoldMinutes
	}
	if holdMinutes < 0 || holdMinutes > MaxHoldMinutes {
		return nil, ErrInvalidHoldMinutes
	}

	return &Reservation{
		id:            uuid.New(),
		userID:        userID,
		slotID:        slotID,
		status:        StatusHold,
		holdExpiresAt: now.Add(time.Duration(holdMinutes) * time.Minute),
	}, nil
}

func ReconstructReservation(
	id, userID, slotID uuid.UUID,
	status Status,
	holdExpiresAt time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		userID:        userID,
		slotID:        slotID,
		status:        status,
		holdExpiresAt: holdExpiresAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Reservation) IsHeld() bool {
	return r.status == StatusHold
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return r.status == StatusHold && now.After(r.holdExpiresAt)
}

// IsPayable reports whether a payment may still be initiated against the hold.
func (r *Reservation) IsPayable(now time.Time) bool {
	return r.status == StatusHold && now.Before(r.holdExpiresAt)
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) Confirm() error {
	if r.status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	if r.status != StatusHold {
		return ErrNotHeld
	}
	r.status = StatusConfirmed
	return nil
}

func (r *Reservation) Expire() error {
	if r.status != StatusHold {
		return ErrNotHeld
	}
	r.status = StatusExpired
	return nil
}

func (r *Reservation) Cancel() error {
	if r.status != StatusHold {
		return ErrNotHeld
	}
	r.status = StatusCancelled
	return nil
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) UserID() uuid.UUID        { return r.userID }
func (r *Reservation) SlotID() uuid.UUID        { return r.slotID }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) HoldExpiresAt() time.Time { return r.holdExpiresAt }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }
