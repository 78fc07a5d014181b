package queries

import (
	"context"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
	ListByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	ListVenueDay(ctx context.Context, venueID uuid.UUID, date booking.Date) ([]*BookingListItem, error)
	OwnerStats(ctx context.Context, venueID uuid.UUID) (*OwnerStatsView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	venues   VenueReadStore
}

func NewBookingQueries(bookings BookingReadStore, venues VenueReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, venues: venues}
}

// GetByID returns the booking to its customer or to the venue's owner;
// everyone else gets not-found rather than forbidden so booking IDs leak
// nothing.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	if view.UserID != nil && *view.UserID == actorID {
		return view, nil
	}
	v, err := q.venues.FindByID(ctx, view.VenueID)
	if err != nil || !v.IsOwnedBy(actorID) {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		items []*BookingListItem
		err   error
	)
	if after == nil || after.After == "" {
		items, err = q.bookings.ListByUserFirstPage(ctx, userID, int32(limit))
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrInvalidQueryInput)
		}
		items, err = q.bookings.ListByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit))
	}
	if err != nil {
		return nil, nil, errs.Mark(err, ErrQueryFailed)
	}

	var next *Cursor
	if len(items) == limit {
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}
