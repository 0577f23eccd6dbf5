package response

import (
	"time"

	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	ServiceID          uuid.UUID `json:"serviceId"`
	ProviderID         uuid.UUID `json:"providerId"`
	SlotID             uuid.UUID `json:"slotId"`
	ProcessorPaymentID string    `json:"processorPaymentId"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		UserID:             rm.UserID,
		ServiceID:          rm.ServiceID,
		ProviderID:         rm.ProviderID,
		SlotID:             rm.SlotID,
		ProcessorPaymentID: rm.ProcessorPaymentID,
		Status:             rm.Status,
		CreatedAt:          rm.CreatedAt,
	}
}
