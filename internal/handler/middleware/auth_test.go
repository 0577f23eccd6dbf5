//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"slotbooking/internal/domain/user"
	"slotbooking/internal/handler/middleware"
	"slotbooking/internal/pkg/config"
	"slotbooking/internal/pkg/jwt"
	"slotbooking/internal/usecase"
	"slotbooking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtService *jwt.Service
	userID     uuid.UUID
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	cfg := config.NewTestConfig()
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(s.T(), err)
	s.jwtService = jwt.NewService(cfg.JWT.Secret, duration)

	authMiddleware := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwtService))

	me := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.String()})
	}
	s.router.GET("/me", authMiddleware.RequireAuth(), me)
	s.router.POST("/provider-only", authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleProvider), me)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) token(role user.Role) string {
	token, err := s.jwtService.GenerateToken(s.userID, role)
	require.NoError(s.T(), err)
	return token
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: valid bearer token populates the user context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, s.token(user.RoleCustomer))

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.userID.String(), response["userId"])
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 for a garbage token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "not-a-jwt")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: 401 for an expired token", func() {
		expiredService := jwt.NewService(config.NewTestConfig().JWT.Secret, -time.Minute)
		token, err := expiredService.GenerateToken(s.userID, user.RoleCustomer)
		require.NoError(s.T(), err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	s.Run("error: 403 for a customer on a provider route", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/provider-only", nil, s.token(user.RoleCustomer))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("success: provider passes its own threshold", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/provider-only", nil, s.token(user.RoleProvider))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: admin passes a provider threshold", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/provider-only", nil, s.token(user.RoleAdmin))
		s.Equal(http.StatusOK, rec.Code)
	})
}
