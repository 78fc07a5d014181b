package queries

import (
	"context"

	"boxbook/internal/domain/booking"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingIntervalReader exposes the day's occupancy outside a write
// transaction. The availability page tolerates the snapshot going stale; the
// booking transaction re-checks.
type BookingIntervalReader interface {
	IntervalsFor(ctx context.Context, venueID uuid.UUID, date booking.Date) ([]booking.BookedInterval, error)
}

type AvailabilityQueries interface {
	DayAvailability(ctx context.Context, slug, date string) (*DayAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	venues    VenueReadStore
	intervals BookingIntervalReader
}

func NewAvailabilityQueries(venues VenueReadStore, intervals BookingIntervalReader) AvailabilityQueries {
	return &availabilityQueriesImpl{venues: venues, intervals: intervals}
}

// DayAvailability builds the discovery grid: every hourly start between open
// and close, flagged available unless a non-cancelled booking overlaps it,
// priced for one hour with the convenience fee included.
func (q *availabilityQueriesImpl) DayAvailability(ctx context.Context, slug, dateRaw string) (*DayAvailabilityView, error) {
	v, err := q.venues.FindBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	date, err := booking.ParseDate(dateRaw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQueryInput)
	}

	existing, err := q.intervals.IntervalsFor(ctx, v.ID(), date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	hour := booking.OneHour()
	quote, err := booking.NewQuote(v.QuoteInput(date, hour, false, true))
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	slots := v.Slots()
	cells := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		cells = append(cells, SlotView{
			Slot:       s.Label(),
			Available:  booking.IsAvailable(existing, s, hour),
			PricePaise: quote.Total.Paise(),
		})
	}

	return &DayAvailabilityView{
		VenueSlug: v.Slug(),
		Date:      date.String(),
		Slots:     cells,
	}, nil
}
