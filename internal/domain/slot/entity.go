package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeWindow  = errors.New("invalid time window")
	ErrInvalidTransition  = errors.New("invalid slot status transition")
	ErrSlotNotAvailable   = errors.New("slot not available")
	ErrSlotAlreadyBooked  = errors.New("slot already booked")
	ErrStartTimeInThePast = errors.New("start time in the past")
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusHold      Status = "HOLD"
	StatusBooked    Status = "BOOKED"
)

// CanTransitionTo encodes the only legal slot lifecycle:
// AVAILABLE -> HOLD -> {BOOKED, AVAILABLE}. BOOKED is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAvailable:
		return next == StatusHold
	case StatusHold:
		return next == StatusBooked || next == StatusAvailable
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Slot struct {
	id         uuid.UUID
	providerID uuid.UUID
	serviceID  uuid.UUID
	startTime  time.Time
	endTime    time.Time
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewSlot(providerID, serviceID uuid.UUID, startTime, endTime, now time.Time) (*Slot, error) {
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeWindow
	}
	if startTime.Before(now) {
		return nil, ErrStartTimeInThePast
	}

	return &Slot{
		id:         uuid.New(),
		providerID: providerID,
		serviceID:  serviceID,
		startTime:  startTime,
		endTime:    endTime,
		status:     StatusAvailable,
	}, nil
}

func ReconstructSlot(
	id, providerID, serviceID uuid.UUID,
	startTime, endTime time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:         id,
		providerID: providerID,
		serviceID:  serviceID,
		startTime:  startTime,
		endTime:    endTime,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (s *Slot) Hold() error {
	if !s.status.CanTransitionTo(StatusHold) {
		return ErrSlotNotAvailable
	}
	s.status = StatusHold
	return nil
}

func (s *Slot) Book() error {
	if !s.status.CanTransitionTo(StatusBooked) {
		return ErrInvalidTransition
	}
	s.status = StatusBooked
	return nil
}

// Release returns a held slot to the pool. A booked slot is never released.
func (s *Slot) Release() error {
	if s.status == StatusBooked {
		return ErrSlotAlreadyBooked
	}
	if !s.status.CanTransitionTo(StatusAvailable) {
		return ErrInvalidTransition
	}
	s.status = StatusAvailable
	return nil
}

func (s *Slot) IsAvailable() bool {
	return s.status == StatusAvailable
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) ProviderID() uuid.UUID { return s.providerID }
func (s *Slot) ServiceID() uuid.UUID  { return s.serviceID }
func (s *Slot) StartTime() time.Time  { return s.startTime }
func (s *Slot) EndTime() time.Time    { return s.endTime }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }
