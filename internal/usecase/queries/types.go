package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type VenueView struct {
	ID               uuid.UUID `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Area             string    `json:"area"`
	City             string    `json:"city"`
	HourlyRatePaise  int64     `json:"hourly_rate_paise"`
	WeekendRatePaise *int64    `json:"weekend_rate_paise,omitempty"`
	OpenSlot         string    `json:"open_slot"`
	CloseSlot        string    `json:"close_slot"`
	Amenities        []string  `json:"amenities"`
	Rules            []string  `json:"rules"`
	CreatedAt        time.Time `json:"created_at"`
}

// SlotView is one cell of the day grid: a start label, whether it can still
// be taken, and what an hour there costs.
type SlotView struct {
	Slot       string `json:"slot"`
	Available  bool   `json:"available"`
	PricePaise int64  `json:"price_paise"`
}

type DayAvailabilityView struct {
	VenueSlug string     `json:"venue_slug"`
	Date      string     `json:"date"`
	Slots     []SlotView `json:"slots"`
}

type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	VenueID       uuid.UUID  `json:"venue_id"`
	VenueName     string     `json:"venue_name"`
	UserID        *uuid.UUID `json:"-"`
	Date          string     `json:"date"`
	Slot          string     `json:"slot"`
	EndSlot       string     `json:"end_slot"`
	DurationHours float64    `json:"duration_hours"`
	Channel       string     `json:"channel"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	AmountPaise   int64      `json:"amount_paise"`
	Amount        string     `json:"amount"`
	Note          *string    `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	VenueName   string    `json:"venue_name"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	StartMin    int       `json:"-"`
	DurationMin int       `json:"-"`
	Status      string    `json:"status"`
	AmountPaise int64     `json:"amount_paise"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnerSlotView is the owner calendar cell: the hourly start label plus the
// booking occupying it, if any.
type OwnerSlotView struct {
	Slot    string           `json:"slot"`
	Booking *BookingListItem `json:"booking,omitempty"`
}

type OwnerDayView struct {
	VenueID uuid.UUID       `json:"venue_id"`
	Date    string          `json:"date"`
	Slots   []OwnerSlotView `json:"slots"`
}

type OwnerStatsView struct {
	TotalBookings     int64 `json:"total_bookings"`
	OnlineBookings    int64 `json:"online_bookings"`
	OfflineBookings   int64 `json:"offline_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	RevenuePaise      int64 `json:"revenue_paise"`
}

type Cursor struct {
	After string
}
