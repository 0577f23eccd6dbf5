package api

import (
	"net/http"

	reqdto "slotbooking/internal/handler/dto/request"
	resdto "slotbooking/internal/handler/dto/response"
	"slotbooking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	workerCommands commands.WorkerCommands
}

func NewWorkerHandler(workerCommands commands.WorkerCommands) *WorkerHandler {
	return &WorkerHandler{
		workerCommands: workerCommands,
	}
}

// @Summary Drain payment event queue
// @Description Apply queued payment events up to the requested bound
// @Tags internal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DrainQueueRequest false "Drain options"
// @Success 200 {object} resdto.DrainQueueResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /internal/worker/drain [post]
func (h *WorkerHandler) DrainQueue(c *gin.Context) {
	var req reqdto.DrainQueueRequest
	// Empty body selects the configured default batch size.
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	processed, err := h.workerCommands.DrainQueue(c.Request.Context(), req.MaxItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.DrainQueueResponse{Processed: processed})
}
