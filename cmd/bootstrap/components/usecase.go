package components

import (
	"boxbook/internal/pkg/clock"
	"boxbook/internal/pkg/config"
	"boxbook/internal/usecase/commands"
	"boxbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewVenueQueries,
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewOwnerQueries,
	),
)
