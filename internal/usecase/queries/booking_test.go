//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingReadStore struct {
	views    map[uuid.UUID]*queries.BookingView
	items    []*queries.BookingListItem
	dayItems []*queries.BookingListItem
	stats    *queries.OwnerStatsView
}

func (s *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	v, ok := s.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func (s *fakeBookingReadStore) ListByUserFirstPage(_ context.Context, _ uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	if int(limit) < len(s.items) {
		return s.items[:limit], nil
	}
	return s.items, nil
}

func (s *fakeBookingReadStore) ListByUserKeyset(_ context.Context, _ uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	var out []*queries.BookingListItem
	for _, item := range s.items {
		if item.CreatedAt.Before(lastCreatedAt) && len(out) < int(limit) {
			out = append(out, item)
		}
	}
	_ = lastID
	return out, nil
}

func (s *fakeBookingReadStore) ListVenueDay(_ context.Context, _ uuid.UUID, _ booking.Date) ([]*queries.BookingListItem, error) {
	return s.dayItems, nil
}

func (s *fakeBookingReadStore) OwnerStats(_ context.Context, _ uuid.UUID) (*queries.OwnerStatsView, error) {
	return s.stats, nil
}

func TestGetBookingByIDActorChecks(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	v, err := venue.NewVenue(
		"powerplay-arena", "Powerplay Arena", "Andheri", "Mumbai",
		booking.MustMoney(1200_00), nil,
		mustSlot(t, "6:00 AM"), mustSlot(t, "11:00 PM"),
		nil, nil, ownerID,
	)
	require.NoError(t, err)

	bookingID := uuid.New()
	store := &fakeBookingReadStore{views: map[uuid.UUID]*queries.BookingView{
		bookingID: {ID: bookingID, VenueID: v.ID(), UserID: &customerID, Number: "CBK-20260127-8F2A1C"},
	}}
	q := queries.NewBookingQueries(store, &fakeVenueStore{venues: []*venue.Venue{v}})

	view, err := q.GetByID(context.Background(), customerID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, "CBK-20260127-8F2A1C", view.Number)

	_, err = q.GetByID(context.Background(), ownerID, bookingID)
	assert.NoError(t, err, "venue owner can read")

	_, err = q.GetByID(context.Background(), uuid.New(), bookingID)
	assert.ErrorIs(t, err, queries.ErrBookingNotFound, "strangers see not-found")

	_, err = q.GetByID(context.Background(), customerID, uuid.New())
	assert.ErrorIs(t, err, queries.ErrBookingNotFound)
}

func TestListByUserPagination(t *testing.T) {
	base := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	var items []*queries.BookingListItem
	for i := range 5 {
		items = append(items, &queries.BookingListItem{
			ID:        uuid.New(),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	store := &fakeBookingReadStore{items: items}
	q := queries.NewBookingQueries(store, &fakeVenueStore{})
	userID := uuid.New()

	page, next, err := q.ListByUser(context.Background(), userID, nil, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	require.NotNil(t, next, "full page implies another page may exist")

	page2, next2, err := q.ListByUser(context.Background(), userID, next, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Nil(t, next2, "short page ends pagination")
	assert.Equal(t, items[3].ID, page2[0].ID)
}

func TestListByUserBadCursor(t *testing.T) {
	q := queries.NewBookingQueries(&fakeBookingReadStore{}, &fakeVenueStore{})
	_, _, err := q.ListByUser(context.Background(), uuid.New(), &queries.Cursor{After: "garbage"}, 10)
	assert.ErrorIs(t, err, queries.ErrInvalidQueryInput)
}

func TestOwnerDayGrid(t *testing.T) {
	ownerID := uuid.New()
	v, err := venue.NewVenue(
		"powerplay-arena", "Powerplay Arena", "Andheri", "Mumbai",
		booking.MustMoney(1200_00), nil,
		mustSlot(t, "6:00 AM"), mustSlot(t, "11:00 PM"),
		nil, nil, ownerID,
	)
	require.NoError(t, err)

	twoHour := &queries.BookingListItem{
		ID: uuid.New(), Number: "CBK-20260127-AAAAAA",
		StartMin: mustSlot(t, "7:00 PM").Minutes(), DurationMin: 120,
	}
	store := &fakeBookingReadStore{dayItems: []*queries.BookingListItem{twoHour}}
	q := queries.NewOwnerQueries(&fakeVenueStore{venues: []*venue.Venue{v}}, store)

	grid, err := q.DayGrid(context.Background(), ownerID, v.ID(), "2026-01-27")
	require.NoError(t, err)
	require.Len(t, grid.Slots, 17)

	byLabel := make(map[string]queries.OwnerSlotView)
	for _, cell := range grid.Slots {
		byLabel[cell.Slot] = cell
	}
	require.NotNil(t, byLabel["7:00 PM"].Booking)
	require.NotNil(t, byLabel["8:00 PM"].Booking, "a 2h booking covers both cells")
	assert.Equal(t, twoHour.ID, byLabel["8:00 PM"].Booking.ID)
	assert.Nil(t, byLabel["9:00 PM"].Booking)

	_, err = q.DayGrid(context.Background(), uuid.New(), v.ID(), "2026-01-27")
	assert.ErrorIs(t, err, queries.ErrForbidden)
}

func TestOwnerStats(t *testing.T) {
	ownerID := uuid.New()
	v, err := venue.NewVenue(
		"powerplay-arena", "Powerplay Arena", "Andheri", "Mumbai",
		booking.MustMoney(1200_00), nil,
		mustSlot(t, "6:00 AM"), mustSlot(t, "11:00 PM"),
		nil, nil, ownerID,
	)
	require.NoError(t, err)

	store := &fakeBookingReadStore{stats: &queries.OwnerStatsView{
		TotalBookings: 12, OnlineBookings: 7, OfflineBookings: 3,
		CancelledBookings: 2, RevenuePaise: 15930_00,
	}}
	q := queries.NewOwnerQueries(&fakeVenueStore{venues: []*venue.Venue{v}}, store)

	stats, err := q.Stats(context.Background(), ownerID, v.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(15930_00), stats.RevenuePaise)

	_, err = q.Stats(context.Background(), uuid.New(), v.ID())
	assert.ErrorIs(t, err, queries.ErrForbidden)
}
