package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
