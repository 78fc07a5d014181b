package shared

import (
	"context"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by the pool and an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Tx interface {
	DB() DBTX
	Bookings() BookingRepository
	Users() UserRepository
}

// UnitOfWork runs write flows in a transaction. WithinSerializable is for the
// availability check-and-insert: two racing bookings for the same slot must
// produce one winner, so the check and the insert share one serializable
// transaction and serialization failures retry.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type BookingRepository interface {
	// Insert persists a new booking. The caller is responsible for having
	// verified availability inside the same serializable transaction.
	Insert(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// IntervalsFor returns the occupancy of a venue's grid on a date,
	// including pending bookings, excluding nothing (the overlap predicate
	// filters cancelled itself).
	IntervalsFor(ctx context.Context, venueID uuid.UUID, date booking.Date) ([]booking.BookedInterval, error)
	// UpdateStatus compares against expected and swaps to the entity's
	// current status; a stale expected status is a conflict.
	UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error
}

type UserRepository interface {
	FindByPhone(ctx context.Context, phone user.Phone) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
