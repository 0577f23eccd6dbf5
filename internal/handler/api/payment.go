package api

import (
	"errors"
	"net/http"

	resdto "slotbooking/internal/handler/dto/response"
	"slotbooking/internal/handler/middleware"
	"slotbooking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Initiate payment
// @Description Create a payment intent for a held reservation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.InitiatePaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations/{id}/payment [post]
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idStr := c.Param("id")
	reservationID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	result, err := h.paymentCommands.InitiatePayment(c.Request.Context(), userID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Reservation belongs to another user",
			})
		case errors.Is(err, commands.ErrReservationNotHeld):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is not payable in its current state",
			})
		case errors.Is(err, commands.ErrReservationExpired):
			c.JSON(http.StatusGone, gin.H{
				"error": "Reservation hold has expired",
			})
		case errors.Is(err, commands.ErrSlotNotFound), errors.Is(err, commands.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation target no longer exists",
			})
		case errors.Is(err, commands.ErrPaymentProcessorFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment processor request failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.InitiatePaymentResponse{
		PaymentIntentID: result.IntentID,
		ClientSecret:    result.ClientSecret,
	})
}
