package queries

import (
	"context"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type OwnerQueries interface {
	DayGrid(ctx context.Context, ownerID, venueID uuid.UUID, date string) (*OwnerDayView, error)
	Stats(ctx context.Context, ownerID, venueID uuid.UUID) (*OwnerStatsView, error)
}

type ownerQueriesImpl struct {
	venues   VenueReadStore
	bookings BookingReadStore
}

func NewOwnerQueries(venues VenueReadStore, bookings BookingReadStore) OwnerQueries {
	return &ownerQueriesImpl{venues: venues, bookings: bookings}
}

// DayGrid is the dashboard calendar: one cell per hourly start, carrying the
// booking that occupies it. A multi-hour booking appears in every cell it
// covers.
func (q *ownerQueriesImpl) DayGrid(ctx context.Context, ownerID, venueID uuid.UUID, dateRaw string) (*OwnerDayView, error) {
	v, err := q.authorizeVenue(ctx, ownerID, venueID)
	if err != nil {
		return nil, err
	}

	date, err := booking.ParseDate(dateRaw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQueryInput)
	}

	items, err := q.bookings.ListVenueDay(ctx, venueID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	hour := booking.OneHour()
	slots := v.Slots()
	cells := make([]OwnerSlotView, 0, len(slots))
	for _, s := range slots {
		cell := OwnerSlotView{Slot: s.Label()}
		cellInterval := booking.NewInterval(s, hour)
		for _, item := range items {
			slot, serr := booking.SlotFromMinutes(item.StartMin)
			dur, derr := booking.DurationFromMinutes(item.DurationMin)
			if serr != nil || derr != nil {
				continue
			}
			if cellInterval.Overlaps(booking.NewInterval(slot, dur)) {
				cell.Booking = item
				break
			}
		}
		cells = append(cells, cell)
	}

	return &OwnerDayView{
		VenueID: venueID,
		Date:    date.String(),
		Slots:   cells,
	}, nil
}

func (q *ownerQueriesImpl) Stats(ctx context.Context, ownerID, venueID uuid.UUID) (*OwnerStatsView, error) {
	if _, err := q.authorizeVenue(ctx, ownerID, venueID); err != nil {
		return nil, err
	}

	stats, err := q.bookings.OwnerStats(ctx, venueID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return stats, nil
}

func (q *ownerQueriesImpl) authorizeVenue(ctx context.Context, ownerID, venueID uuid.UUID) (*venue.Venue, error) {
	v, err := q.venues.FindByID(ctx, venueID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if !v.IsOwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return v, nil
}
