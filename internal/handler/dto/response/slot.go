package response

import (
	"time"

	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"providerId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
}

type CreateSlotResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromSlotView(rm *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		ID:         rm.ID,
		ProviderID: rm.ProviderID,
		ServiceID:  rm.ServiceID,
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		Status:     rm.Status,
	}
}
