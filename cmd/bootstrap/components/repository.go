package components

import (
	"slotbooking/internal/infra/readstore"
	repo_impl "slotbooking/internal/infra/repository"
	"slotbooking/internal/infra/uow"
	"slotbooking/internal/usecase/commands"
	"slotbooking/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write-side repositories
		fx.Annotate(
			repo_impl.NewSlotRepository,
			fx.As(new(commands.SlotRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewServiceRepository,
			fx.As(new(commands.ServiceRepository)),
		),
		uow.NewPgxTxManager,
		// Read-side repositories for queries
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)
