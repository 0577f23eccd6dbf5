package api

import (
	"errors"
	"net/http"

	reqdto "slotbooking/internal/handler/dto/request"
	resdto "slotbooking/internal/handler/dto/response"
	"slotbooking/internal/handler/middleware"
	"slotbooking/internal/usecase/commands"
	"slotbooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	slotCommands commands.SlotCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

// @Summary Create slot
// @Description Publish a new bookable time slot for a service
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot request"
// @Success 201 {object} resdto.CreateSlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots [post]
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.slotCommands.CreateSlot(c.Request.Context(), providerID, req.ServiceID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
		case errors.Is(err, commands.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Slot does not belong to this provider's service",
			})
		case errors.Is(err, commands.ErrInvalidSlotWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot time window",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateSlotResponse{ID: result.SlotID})
}

// @Summary List available slots
// @Description List available slots for a service
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param service_id query string true "Service ID"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) ListAvailableSlots(c *gin.Context) {
	serviceIDStr := c.Query("service_id")
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid service ID format",
		})
		return
	}

	views, err := h.slotQueries.ListAvailableByService(c.Request.Context(), serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.SlotResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromSlotView(rm)
	}

	c.JSON(http.StatusOK, response)
}
