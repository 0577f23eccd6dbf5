package response

import (
	"time"

	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	SlotID        uuid.UUID `json:"slotId"`
	Status        string    `json:"status"`
	HoldExpiresAt time.Time `json:"holdExpiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ReserveSlotResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	HoldExpiresAt time.Time `json:"holdExpiresAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		SlotID:        rm.SlotID,
		Status:        rm.Status,
		HoldExpiresAt: rm.HoldExpiresAt,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}
