package writerepo

import (
	"context"
	"errors"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type BookingRepository struct {
	db shared.DBTX
}

func NewBookingRepository(db shared.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, number, venue_id, user_id, booked_on, start_min, duration_min,
	channel, status, customer_name, customer_phone, amount_paise, note
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.Number().String(),
		b.VenueID(),
		b.UserID(),
		b.Date().Time(),
		b.Slot().Minutes(),
		b.Duration().Minutes(),
		b.Channel().String(),
		b.Status().String(),
		b.Contact().Name(),
		b.Contact().Phone(),
		b.Amount().Paise(),
		b.Note(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("booking number collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

const selectBookingSQL = `
SELECT id, number, venue_id, user_id, booked_on, start_min, duration_min,
	channel, status, customer_name, customer_phone, amount_paise, note,
	created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, selectBookingSQL, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

const selectIntervalsSQL = `
SELECT start_min, duration_min, status
FROM bookings
WHERE venue_id = $1 AND booked_on = $2`

func (r *BookingRepository) IntervalsFor(ctx context.Context, venueID uuid.UUID, date booking.Date) ([]booking.BookedInterval, error) {
	rows, err := r.db.Query(ctx, selectIntervalsSQL, venueID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked intervals", err)
	}
	defer rows.Close()

	var intervals []booking.BookedInterval
	for rows.Next() {
		var startMin, durationMin int
		var status string
		if err := rows.Scan(&startMin, &durationMin, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked interval", err)
		}

		slot, err := booking.SlotFromMinutes(startMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt slot in bookings row", err)
		}
		dur, err := booking.DurationFromMinutes(durationMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt duration in bookings row", err)
		}

		intervals = append(intervals, booking.BookedInterval{
			Slot:     slot,
			Duration: dur,
			Status:   booking.Status(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked intervals", err)
	}
	return intervals, nil
}

const updateStatusSQL = `
UPDATE bookings
SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3`

// UpdateStatus is a compare-and-set: expected is the status the caller read,
// and zero affected rows means someone else transitioned first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	tag, err := r.db.Exec(ctx, updateStatusSQL, b.Status().String(), b.ID(), expected.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id           uuid.UUID
		number       string
		venueID      uuid.UUID
		userID       *uuid.UUID
		bookedOn     time.Time
		startMin     int
		durationMin  int
		channel      string
		status       string
		name         string
		phone        string
		amountPaise  int64
		note         string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(
		&id, &number, &venueID, &userID, &bookedOn, &startMin, &durationMin,
		&channel, &status, &name, &phone, &amountPaise, &note,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	slot, err := booking.SlotFromMinutes(startMin)
	if err != nil {
		return nil, err
	}
	dur, err := booking.DurationFromMinutes(durationMin)
	if err != nil {
		return nil, err
	}
	contact, err := booking.NewContact(name, phone)
	if err != nil {
		return nil, err
	}
	amount, err := booking.NewMoney(amountPaise)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id,
		booking.BookingNumber(number),
		venueID,
		userID,
		booking.DateOf(bookedOn),
		slot,
		dur,
		booking.Channel(channel),
		booking.Status(status),
		contact,
		amount,
		note,
		createdAt,
		updatedAt,
	), nil
}
