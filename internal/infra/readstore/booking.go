package readstore

import (
	"context"
	"errors"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/queries"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db shared.DBTX
}

func NewBookingReadStore(db shared.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const selectBookingViewSQL = `
SELECT b.id, b.number, b.venue_id, v.name, b.user_id, b.booked_on, b.start_min,
	b.duration_min, b.channel, b.status, b.customer_name, b.customer_phone,
	b.amount_paise, b.note, b.created_at, b.updated_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, selectBookingViewSQL, id)
	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

const listUserBookingsFirstPageSQL = `
SELECT b.id, b.number, v.name, b.booked_on, b.start_min, b.duration_min,
	b.status, b.amount_paise, b.created_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2`

const listUserBookingsKeysetSQL = `
SELECT b.id, b.number, v.name, b.booked_on, b.start_min, b.duration_min,
	b.status, b.amount_paise, b.created_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.user_id = $1 AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4`

func (r *BookingReadStore) ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listUserBookingsFirstPageSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	return collectListItems(rows)
}

func (r *BookingReadStore) ListByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listUserBookingsKeysetSQL, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings keyset", err)
	}
	return collectListItems(rows)
}

const listVenueDaySQL = `
SELECT b.id, b.number, v.name, b.booked_on, b.start_min, b.duration_min,
	b.status, b.amount_paise, b.created_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.venue_id = $1 AND b.booked_on = $2 AND b.status <> 'cancelled'
ORDER BY b.start_min`

// ListVenueDay feeds the owner calendar: every blocking booking of the day,
// ascending by start slot.
func (r *BookingReadStore) ListVenueDay(ctx context.Context, venueID uuid.UUID, date booking.Date) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listVenueDaySQL, venueID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list venue day", err)
	}
	return collectListItems(rows)
}

const ownerStatsSQL = `
SELECT
	count(*),
	count(*) FILTER (WHERE channel = 'online' AND status <> 'cancelled'),
	count(*) FILTER (WHERE channel = 'offline' AND status <> 'cancelled'),
	count(*) FILTER (WHERE status = 'cancelled'),
	COALESCE(sum(amount_paise) FILTER (WHERE status = 'confirmed'), 0)
FROM bookings
WHERE venue_id = $1`

func (r *BookingReadStore) OwnerStats(ctx context.Context, venueID uuid.UUID) (*queries.OwnerStatsView, error) {
	var stats queries.OwnerStatsView
	err := r.db.QueryRow(ctx, ownerStatsSQL, venueID).Scan(
		&stats.TotalBookings,
		&stats.OnlineBookings,
		&stats.OfflineBookings,
		&stats.CancelledBookings,
		&stats.RevenuePaise,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate owner stats", err)
	}
	return &stats, nil
}

func collectListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			bookedOn time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.Number, &item.VenueName, &bookedOn, &item.StartMin,
			&item.DurationMin, &item.Status, &item.AmountPaise, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = booking.DateOf(bookedOn).String()
		item.Slot = slotLabel(item.StartMin)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		bookedOn    time.Time
		startMin    int
		durationMin int
		note        string
	)
	if err := row.Scan(
		&view.ID, &view.Number, &view.VenueID, &view.VenueName, &view.UserID,
		&bookedOn, &startMin, &durationMin, &view.Channel, &view.Status,
		&view.CustomerName, &view.CustomerPhone, &view.AmountPaise, &note,
		&view.CreatedAt, &view.UpdatedAt,
	); err != nil {
		return nil, err
	}

	view.Date = booking.DateOf(bookedOn).String()
	view.Slot = slotLabel(startMin)
	view.DurationHours = float64(durationMin) / 60

	slot, err := booking.SlotFromMinutes(startMin)
	if err == nil {
		if dur, derr := booking.DurationFromMinutes(durationMin); derr == nil {
			view.EndSlot = slot.Add(dur).Label()
		}
	}

	amount, err := booking.NewMoney(view.AmountPaise)
	if err == nil {
		view.Amount = amount.String()
	}
	if note != "" {
		view.Note = &note
	}
	return &view, nil
}
