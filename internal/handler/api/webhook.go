package api

import (
	"errors"
	"io"
	"net/http"

	"slotbooking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Callback bodies are small JSON documents; this bound only guards against
// pathological payloads.
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	webhookCommands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{
		webhookCommands: webhookCommands,
	}
}

// @Summary Payment webhook
// @Description Receive a payment processor callback
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Callback signature"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentCallback(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	if err := h.webhookCommands.HandleCallback(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, commands.ErrSignatureInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid signature",
			})
			return
		}
		// Non-2xx makes the processor redeliver, which is what we want when
		// the event could not be durably recorded.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": "true"})
}
