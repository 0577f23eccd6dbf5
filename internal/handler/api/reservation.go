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

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Reserve slot
// @Description Place a time-bounded exclusive hold on an available slot
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveSlotRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveSlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) ReserveSlot(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReserveSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reservationCommands.ReserveSlot(c.Request.Context(), userID, req.SlotID, req.HoldMinutes)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, commands.ErrSlotNotAvailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is not available",
			})
		case errors.Is(err, commands.ErrInvalidHoldMinutes):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid hold duration",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.ReserveSlotResponse{
		ReservationID: result.ReservationID,
		HoldExpiresAt: result.HoldExpiresAt,
	})
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	// Reservations are visible to their owner only.
	if view.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get user reservations
// @Description Get all reservations for the current user
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.reservationQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ReservationResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromReservationView(rm)
	}

	c.JSON(http.StatusOK, response)
}
