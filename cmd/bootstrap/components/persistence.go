package components

import (
	"boxbook/internal/infra/holdstore"
	"boxbook/internal/infra/readstore"
	"boxbook/internal/infra/uow"
	"boxbook/internal/infra/writerepo"
	"boxbook/internal/usecase/commands"
	"boxbook/internal/usecase/queries"
	"boxbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	holdstoreModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Venue: one store backs both the query side and the command-side lookups.
		fx.Annotate(
			readstore.NewVenueReadStore,
			fx.As(new(queries.VenueReadStore)),
			fx.As(new(commands.VenueRepository)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		// Availability reads off the pool share the write repository's interval
		// query so both sides apply the same blocking rule.
		fx.Annotate(
			writerepo.NewBookingRepository,
			fx.As(new(queries.BookingIntervalReader)),
		),
	),
)

var holdstoreModule = fx.Module("persistence/holdstore",
	fx.Provide(
		fx.Annotate(
			holdstore.NewStore,
			fx.As(new(commands.HoldStore)),
			fx.As(new(commands.OTPStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) shared.DBTX {
	return pool
}
