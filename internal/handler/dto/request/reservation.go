package request

import (
	"github.com/google/uuid"
)

type ReserveSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
	// HoldMinutes selects the hold window length; zero picks the default.
	HoldMinutes int `json:"hold_minutes,omitempty"`
}
