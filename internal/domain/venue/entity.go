package venue

import (
	"errors"
	"regexp"
	"time"

	"boxbook/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlug  = errors.New("invalid venue slug")
	ErrInvalidName  = errors.New("invalid venue name")
	ErrInvalidRate  = errors.New("invalid hourly rate")
	ErrInvalidHours = errors.New("invalid operating hours")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Venue is a cricket box: immutable reference data loaded once and handed to
// the booking flow. Changes go through owner onboarding, not through here.
type Venue struct {
	id          uuid.UUID
	slug        string
	name        string
	area        string
	city        string
	hourlyRate  booking.Money
	weekendRate *booking.Money
	open        booking.Slot
	close       booking.Slot
	amenities   []string
	rules       []string
	ownerID     uuid.UUID
	active      bool
	createdAt   time.Time
}

func NewVenue(
	slug, name, area, city string,
	hourlyRate booking.Money,
	weekendRate *booking.Money,
	open, close booking.Slot,
	amenities, rules []string,
	ownerID uuid.UUID,
) (*Venue, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	if len(name) < 3 {
		return nil, ErrInvalidName
	}
	if hourlyRate.Paise() <= 0 {
		return nil, ErrInvalidRate
	}
	if weekendRate != nil && weekendRate.Paise() <= 0 {
		return nil, ErrInvalidRate
	}
	if !open.Before(close) {
		return nil, ErrInvalidHours
	}

	return &Venue{
		id:          uuid.New(),
		slug:        slug,
		name:        name,
		area:        area,
		city:        city,
		hourlyRate:  hourlyRate,
		weekendRate: weekendRate,
		open:        open,
		close:       close,
		amenities:   amenities,
		rules:       rules,
		ownerID:     ownerID,
		active:      true,
	}, nil
}

func ReconstructVenue(
	id uuid.UUID,
	slug, name, area, city string,
	hourlyRate booking.Money,
	weekendRate *booking.Money,
	open, close booking.Slot,
	amenities, rules []string,
	ownerID uuid.UUID,
	active bool,
	createdAt time.Time,
) *Venue {
	return &Venue{
		id:          id,
		slug:        slug,
		name:        name,
		area:        area,
		city:        city,
		hourlyRate:  hourlyRate,
		weekendRate: weekendRate,
		open:        open,
		close:       close,
		amenities:   amenities,
		rules:       rules,
		ownerID:     ownerID,
		active:      active,
		createdAt:   createdAt,
	}
}

// Slots is the venue's fixed hourly grid of start times.
func (v *Venue) Slots() []booking.Slot {
	return booking.Catalog(v.open, v.close)
}

// FitsGrid reports whether [slot, slot+d) stays inside operating hours.
func (v *Venue) FitsGrid(slot booking.Slot, d booking.Duration) bool {
	if slot.Before(v.open) {
		return false
	}
	return slot.Minutes()+d.Minutes() <= v.close.Minutes()
}

func (v *Venue) QuoteInput(date booking.Date, d booking.Duration, playerMatching, convenienceFee bool) booking.QuoteInput {
	return booking.QuoteInput{
		HourlyRate:     v.hourlyRate,
		WeekendRate:    v.weekendRate,
		Date:           date,
		Duration:       d,
		PlayerMatching: playerMatching,
		ConvenienceFee: convenienceFee,
	}
}

func (v *Venue) IsOwnedBy(userID uuid.UUID) bool {
	return v.ownerID == userID
}

func (v *Venue) ID() uuid.UUID               { return v.id }
func (v *Venue) Slug() string                { return v.slug }
func (v *Venue) Name() string                { return v.name }
func (v *Venue) Area() string                { return v.area }
func (v *Venue) City() string                { return v.city }
func (v *Venue) HourlyRate() booking.Money   { return v.hourlyRate }
func (v *Venue) WeekendRate() *booking.Money { return v.weekendRate }
func (v *Venue) Open() booking.Slot          { return v.open }
func (v *Venue) Close() booking.Slot         { return v.close }
func (v *Venue) Amenities() []string         { return v.amenities }
func (v *Venue) Rules() []string             { return v.rules }
func (v *Venue) OwnerID() uuid.UUID          { return v.ownerID }
func (v *Venue) IsActive() bool              { return v.active }
func (v *Venue) CreatedAt() time.Time        { return v.createdAt }
