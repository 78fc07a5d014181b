package readstore

import (
	"context"
	"errors"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/queries"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VenueReadStore struct {
	db shared.DBTX
}

func NewVenueReadStore(db shared.DBTX) *VenueReadStore {
	return &VenueReadStore{db: db}
}

func (r *VenueReadStore) FindBySlug(ctx context.Context, slug string) (*venue.Venue, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, slug, name, area, city, hourly_rate_paise, weekend_rate_paise,
	open_min, close_min, amenities, rules, owner_id, active, created_at
FROM venues
WHERE slug = $1 AND active`, slug)
	return scanVenue(row)
}

func (r *VenueReadStore) FindByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, slug, name, area, city, hourly_rate_paise, weekend_rate_paise,
	open_min, close_min, amenities, rules, owner_id, active, created_at
FROM venues
WHERE id = $1 AND active`, id)
	return scanVenue(row)
}

const listVenuesSQL = `
SELECT id, slug, name, area, city, hourly_rate_paise, weekend_rate_paise,
	open_min, close_min, amenities, rules, created_at
FROM venues
WHERE active AND ($1::text IS NULL OR area = $1)
ORDER BY name`

func (r *VenueReadStore) List(ctx context.Context, area *string) ([]*queries.VenueView, error) {
	rows, err := r.db.Query(ctx, listVenuesSQL, area)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list venues", err)
	}
	defer rows.Close()

	var views []*queries.VenueView
	for rows.Next() {
		var (
			v        queries.VenueView
			openMin  int
			closeMin int
		)
		if err := rows.Scan(
			&v.ID, &v.Slug, &v.Name, &v.Area, &v.City,
			&v.HourlyRatePaise, &v.WeekendRatePaise,
			&openMin, &closeMin, &v.Amenities, &v.Rules, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan venue row", err)
		}
		v.OpenSlot = slotLabel(openMin)
		v.CloseSlot = slotLabel(closeMin)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read venues", err)
	}
	return views, nil
}

func scanVenue(row pgx.Row) (*venue.Venue, error) {
	var (
		id          uuid.UUID
		slug        string
		name        string
		area        string
		city        string
		ratePaise   int64
		weekendPtr  *int64
		openMin     int
		closeMin    int
		amenities   []string
		rules       []string
		ownerID     uuid.UUID
		active      bool
		createdAt   time.Time
	)
	if err := row.Scan(
		&id, &slug, &name, &area, &city, &ratePaise, &weekendPtr,
		&openMin, &closeMin, &amenities, &rules, &ownerID, &active, &createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("venue not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan venue", err)
	}

	rate, err := booking.NewMoney(ratePaise)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt rate in venues row", err)
	}
	var weekendRate *booking.Money
	if weekendPtr != nil {
		m, err := booking.NewMoney(*weekendPtr)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt weekend rate in venues row", err)
		}
		weekendRate = &m
	}
	open, err := booking.SlotFromMinutes(openMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt open slot in venues row", err)
	}
	close, err := booking.SlotFromMinutes(closeMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt close slot in venues row", err)
	}

	return venue.ReconstructVenue(
		id, slug, name, area, city, rate, weekendRate,
		open, close, amenities, rules, ownerID, active, createdAt,
	), nil
}

func slotLabel(minutes int) string {
	s, err := booking.SlotFromMinutes(minutes)
	if err != nil {
		return ""
	}
	return s.Label()
}
