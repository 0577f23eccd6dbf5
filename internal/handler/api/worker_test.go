//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"slotbooking/internal/handler/api"
	resdto "slotbooking/internal/handler/dto/response"
	"slotbooking/tests/common/httptest"
	commandsmock "slotbooking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WorkerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWorkerCommands
	handler      *api.WorkerHandler
}

func (s *WorkerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWorkerCommands(s.mockCtrl)
	s.handler = api.NewWorkerHandler(s.mockCommands)

	s.router.POST("/internal/worker/drain", s.handler.DrainQueue)
}

func (s *WorkerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWorkerHandlerSuite(t *testing.T) {
	suite.Run(t, new(WorkerHandlerTestSuite))
}

func (s *WorkerHandlerTestSuite) TestDrainQueue() {
	url := "/internal/worker/drain"

	s.Run("success: drains with an explicit bound", func() {
		s.mockCommands.EXPECT().DrainQueue(gomock.Any(), 10).Return(7, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"max_items": 10}, "")

		var response resdto.DrainQueueResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(7, response.Processed)
	})

	s.Run("success: empty body selects the default bound", func() {
		s.mockCommands.EXPECT().DrainQueue(gomock.Any(), 0).Return(0, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 500 when the queue is unreachable", func() {
		s.mockCommands.EXPECT().DrainQueue(gomock.Any(), 10).Return(0, assert.AnError).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"max_items": 10}, "")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
