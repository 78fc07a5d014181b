package queries

import (
	"context"

	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrVenueNotFound     = errs.New("venue not found")
	ErrBookingNotFound   = errs.New("booking not found")
	ErrForbidden         = errs.New("operation not allowed for this user")
	ErrInvalidQueryInput = errs.New("invalid query input")
	ErrQueryFailed       = errs.New("query failed")
)

// VenueReadStore loads venues for the read side. FindBySlug and FindByID
// return full entities because availability needs the pricing inputs, not
// just display fields.
type VenueReadStore interface {
	FindBySlug(ctx context.Context, slug string) (*venue.Venue, error)
	FindByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error)
	List(ctx context.Context, area *string) ([]*VenueView, error)
}

type VenueQueries interface {
	List(ctx context.Context, area *string) ([]*VenueView, error)
	GetBySlug(ctx context.Context, slug string) (*VenueView, error)
}

type venueQueriesImpl struct {
	venues VenueReadStore
}

func NewVenueQueries(venues VenueReadStore) VenueQueries {
	return &venueQueriesImpl{venues: venues}
}

func (q *venueQueriesImpl) List(ctx context.Context, area *string) ([]*VenueView, error) {
	views, err := q.venues.List(ctx, area)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *venueQueriesImpl) GetBySlug(ctx context.Context, slug string) (*VenueView, error) {
	v, err := q.venues.FindBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return NewVenueView(v), nil
}

// NewVenueView flattens a venue entity into its display shape.
func NewVenueView(v *venue.Venue) *VenueView {
	var weekend *int64
	if v.WeekendRate() != nil {
		paise := v.WeekendRate().Paise()
		weekend = &paise
	}
	return &VenueView{
		ID:               v.ID(),
		Slug:             v.Slug(),
		Name:             v.Name(),
		Area:             v.Area(),
		City:             v.City(),
		HourlyRatePaise:  v.HourlyRate().Paise(),
		WeekendRatePaise: weekend,
		OpenSlot:         v.Open().Label(),
		CloseSlot:        v.Close().Label(),
		Amenities:        v.Amenities(),
		Rules:            v.Rules(),
		CreatedAt:        v.CreatedAt(),
	}
}
