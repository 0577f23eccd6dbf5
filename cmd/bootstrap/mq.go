package bootstrap

import (
	"context"
	"log/slog"

	"slotbooking/internal/infra/events"
	"slotbooking/internal/pkg/config"
	"slotbooking/internal/usecase/commands"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher connects to the broker when one is configured and falls
// back to a no-op publisher otherwise. Event publication is advisory, so an
// unreachable broker must not keep the service from starting.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	if cfg.MQ.URL == "" {
		slog.Info("no message broker configured, domain events disabled")
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		slog.Error("failed to connect to message broker, domain events disabled", "error", err)
		return events.NewNoopPublisher()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
