package components

import (
	"slotbooking/internal/infra/lock"
	"slotbooking/internal/infra/queue"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/pkg/config"
	"slotbooking/internal/usecase"
	"slotbooking/internal/usecase/commands"
	"slotbooking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSlotLock,
	NewEventQueue,
	commands.NewPaymentEventApplier,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewReservationCommands,
		commands.NewPaymentCommands,
		NewWebhookCommands,
		NewWorkerCommands,
		commands.NewSlotCommands,
		commands.NewReaperCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewReservationQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewSlotLock(cfg config.Config, client *redis.Client) commands.SlotLock {
	if !cfg.Lock.Enabled {
		return lock.NewNoopSlotLock()
	}
	return lock.NewRedisSlotLock(client)
}

func NewEventQueue(cfg config.Config, client *redis.Client) commands.EventQueue {
	return queue.NewRedisEventQueue(client, cfg.Queue.Key)
}

func NewReservationCommands(
	cfg config.Config,
	slotRepo commands.SlotRepository,
	reservationRepo commands.ReservationRepository,
	tx commands.TxManager,
	slotLock commands.SlotLock,
	clk clock.Clock,
) commands.ReservationCommands {
	return commands.NewReservationCommands(slotRepo, reservationRepo, tx, slotLock, cfg.Lock.TTL, clk)
}

func NewWebhookCommands(
	cfg config.Config,
	proc commands.PaymentProcessor,
	applier commands.PaymentEventApplier,
	eventQueue commands.EventQueue,
) commands.WebhookCommands {
	return commands.NewWebhookCommands(proc, applier, eventQueue, cfg.Queue.Enabled)
}

func NewWorkerCommands(
	cfg config.Config,
	eventQueue commands.EventQueue,
	applier commands.PaymentEventApplier,
) commands.WorkerCommands {
	return commands.NewWorkerCommands(eventQueue, applier, cfg.Queue.DefaultBatchSize)
}
