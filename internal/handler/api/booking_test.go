//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"slotbooking/internal/handler/api"
	resdto "slotbooking/internal/handler/dto/response"
	"slotbooking/internal/usecase/queries"
	"slotbooking/tests/common/httptest"
	queriesmock "slotbooking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	handler     *api.BookingHandler
	userID      uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockQueries)

	s.router.GET("/bookings/:id", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		s.handler.GetBooking(c)
	})
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()

	s.Run("success: returns the caller's booking", func() {
		view := &queries.BookingView{
			ID:                 bookingID,
			UserID:             s.userID,
			ServiceID:          uuid.New(),
			ProviderID:         uuid.New(),
			SlotID:             uuid.New(),
			ProcessorPaymentID: "pi_123",
			Status:             "CONFIRMED",
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal("pi_123", response.ProcessorPaymentID)
	})

	s.Run("error: 403 for another user's booking", func() {
		view := &queries.BookingView{
			ID:                 bookingID,
			UserID:             uuid.New(),
			ProcessorPaymentID: "pi_123",
			Status:             "CONFIRMED",
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not authorized")
	})

	s.Run("error: 404 for unknown booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})
}
