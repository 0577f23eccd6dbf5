package bootstrap

import (
	"slotbooking/internal/infra/processor"
	"slotbooking/internal/pkg/config"
	"slotbooking/internal/usecase/commands"

	"go.uber.org/fx"
)

var ProcessorModule = fx.Module("processor",
	fx.Provide(
		NewPaymentProcessor,
	),
)

func NewPaymentProcessor(cfg config.Config) commands.PaymentProcessor {
	return processor.NewStripeProcessor(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
}
