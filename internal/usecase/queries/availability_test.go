//go:build unit

package queries_test

import (
	"context"
	"testing"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVenueStore struct {
	venues []*venue.Venue
}

func (s *fakeVenueStore) FindBySlug(_ context.Context, slug string) (*venue.Venue, error) {
	for _, v := range s.venues {
		if v.Slug() == slug {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("venue not found", nil, infra.KindNotFound)
}

func (s *fakeVenueStore) FindByID(_ context.Context, id uuid.UUID) (*venue.Venue, error) {
	for _, v := range s.venues {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("venue not found", nil, infra.KindNotFound)
}

func (s *fakeVenueStore) List(_ context.Context, _ *string) ([]*queries.VenueView, error) {
	var views []*queries.VenueView
	for _, v := range s.venues {
		views = append(views, queries.NewVenueView(v))
	}
	return views, nil
}

type fakeIntervalReader struct {
	intervals []booking.BookedInterval
}

func (r *fakeIntervalReader) IntervalsFor(_ context.Context, _ uuid.UUID, _ booking.Date) ([]booking.BookedInterval, error) {
	return r.intervals, nil
}

func mustSlot(t *testing.T, label string) booking.Slot {
	t.Helper()
	s, err := booking.ParseSlot(label)
	require.NoError(t, err)
	return s
}

func testVenue(t *testing.T, weekendRate *booking.Money) *venue.Venue {
	t.Helper()
	v, err := venue.NewVenue(
		"powerplay-arena", "Powerplay Arena", "Andheri", "Mumbai",
		booking.MustMoney(1200_00), weekendRate,
		mustSlot(t, "6:00 AM"), mustSlot(t, "11:00 PM"),
		nil, nil, uuid.New(),
	)
	require.NoError(t, err)
	return v
}

func booked(t *testing.T, label string, minutes int, status booking.Status) booking.BookedInterval {
	t.Helper()
	d, err := booking.DurationFromMinutes(minutes)
	require.NoError(t, err)
	return booking.BookedInterval{Slot: mustSlot(t, label), Duration: d, Status: status}
}

func TestDayAvailability(t *testing.T) {
	v := testVenue(t, nil)
	reader := &fakeIntervalReader{intervals: []booking.BookedInterval{
		booked(t, "7:00 PM", 120, booking.StatusConfirmed),
		booked(t, "9:00 AM", 60, booking.StatusPending),
		booked(t, "11:00 AM", 60, booking.StatusCancelled),
	}}
	q := queries.NewAvailabilityQueries(&fakeVenueStore{venues: []*venue.Venue{v}}, reader)

	// 2026-01-27 is a Tuesday
	view, err := q.DayAvailability(context.Background(), "powerplay-arena", "2026-01-27")
	require.NoError(t, err)

	assert.Equal(t, "powerplay-arena", view.VenueSlug)
	assert.Equal(t, "2026-01-27", view.Date)
	require.Len(t, view.Slots, 17)

	byLabel := make(map[string]queries.SlotView)
	for _, cell := range view.Slots {
		byLabel[cell.Slot] = cell
	}

	assert.False(t, byLabel["7:00 PM"].Available)
	assert.False(t, byLabel["8:00 PM"].Available, "second hour of a 2h booking")
	assert.True(t, byLabel["9:00 PM"].Available)
	assert.False(t, byLabel["9:00 AM"].Available, "pending blocks")
	assert.True(t, byLabel["11:00 AM"].Available, "cancelled does not block")

	// 1200.00 + 216.00 GST + 49.00 convenience fee
	assert.Equal(t, int64(1465_00), byLabel["6:00 AM"].PricePaise)
}

func TestDayAvailabilityWeekendPricing(t *testing.T) {
	weekend := booking.MustMoney(1500_00)
	v := testVenue(t, &weekend)
	q := queries.NewAvailabilityQueries(&fakeVenueStore{venues: []*venue.Venue{v}}, &fakeIntervalReader{})

	// 2026-01-24 is a Saturday: 1500.00 + 270.00 GST + 49.00
	view, err := q.DayAvailability(context.Background(), "powerplay-arena", "2026-01-24")
	require.NoError(t, err)
	assert.Equal(t, int64(1819_00), view.Slots[0].PricePaise)
}

func TestDayAvailabilityErrors(t *testing.T) {
	v := testVenue(t, nil)
	q := queries.NewAvailabilityQueries(&fakeVenueStore{venues: []*venue.Venue{v}}, &fakeIntervalReader{})

	_, err := q.DayAvailability(context.Background(), "no-such-venue", "2026-01-27")
	assert.ErrorIs(t, err, queries.ErrVenueNotFound)

	_, err = q.DayAvailability(context.Background(), "powerplay-arena", "27-01-2026")
	assert.ErrorIs(t, err, queries.ErrInvalidQueryInput)
}
