package components

import (
	"slotbooking/internal/handler"
	"slotbooking/internal/handler/api"
	"slotbooking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewBookingHandler,
		api.NewWebhookHandler,
		api.NewWorkerHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	slot *api.SlotHandler,
	reservation *api.ReservationHandler,
	payment *api.PaymentHandler,
	booking *api.BookingHandler,
	webhook *api.WebhookHandler,
	worker *api.WorkerHandler,
) handler.Handlers {
	return handler.Handlers{
		Slot:        slot,
		Reservation: reservation,
		Payment:     payment,
		Booking:     booking,
		Webhook:     webhook,
		Worker:      worker,
	}
}
