package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotbooking/internal/domain/user"
	"slotbooking/internal/handler/api"
	"slotbooking/internal/handler/middleware"
	"slotbooking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Slot        *api.SlotHandler
	Reservation *api.ReservationHandler
	Payment     *api.PaymentHandler
	Booking     *api.BookingHandler
	Webhook     *api.WebhookHandler
	Worker      *api.WorkerHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Processor callbacks authenticate by signature, not by bearer token.
	engine.POST("/webhooks/payment", handlers.Webhook.HandlePaymentCallback)

	apiGroup := engine.Group("/api")
	{
		slots := apiGroup.Group("/slots")
		slots.Use(authMiddleware.RequireAuth())
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Slot.ListAvailableSlots},
				{Method: http.MethodPost, Path: "", Handler: handlers.Slot.CreateSlot,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleProvider)}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Reservation.ReserveSlot},
				{Method: http.MethodGet, Path: "", Handler: handlers.Reservation.GetUserReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Reservation.GetReservation},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: handlers.Payment.InitiatePayment},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Booking.GetBooking},
			})
		}
	}

	internal := engine.Group("/internal")
	internal.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
	{
		addRoutes(internal, []route{
			{Method: http.MethodPost, Path: "/worker/drain", Handler: handlers.Worker.DrainQueue},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
