package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPastDate          = errors.New("booking date is in the past")
)

// Booking is a reserved interval on a venue's grid. Venue, date, slot and
// duration never change after creation; the only mutations are the status
// transitions Confirm and Cancel.
type Booking struct {
	id        uuid.UUID
	number    BookingNumber
	venueID   uuid.UUID
	userID    *uuid.UUID // nil for offline walk-ins
	date      Date
	slot      Slot
	duration  Duration
	channel   Channel
	status    Status
	contact   Contact
	amount    Money
	note      string
	createdAt time.Time
	updatedAt time.Time
}

// NewOnlineBooking starts the checkout flow: the booking is pending until
// the customer confirms within the hold window.
func NewOnlineBooking(
	venueID, userID uuid.UUID,
	date Date,
	slot Slot,
	duration Duration,
	contact Contact,
	amount Money,
	note string,
	now time.Time,
) (*Booking, error) {
	if date.Before(DateOf(now)) {
		return nil, ErrPastDate
	}

	id := userID
	return &Booking{
		id:       uuid.New(),
		number:   NewBookingNumber(now),
		venueID:  venueID,
		userID:   &id,
		date:     date,
		slot:     slot,
		duration: duration,
		channel:  ChannelOnline,
		status:   StatusPending,
		contact:  contact,
		amount:   amount,
		note:     note,
	}, nil
}

// NewOfflineBooking is the owner entering a walk-in or phone booking; it is
// confirmed immediately and pinned to the hourly grid.
func NewOfflineBooking(
	venueID uuid.UUID,
	date Date,
	slot Slot,
	contact Contact,
	amount Money,
	note string,
	now time.Time,
) (*Booking, error) {
	if date.Before(DateOf(now)) {
		return nil, ErrPastDate
	}

	return &Booking{
		id:       uuid.New(),
		number:   NewBookingNumber(now),
		venueID:  venueID,
		date:     date,
		slot:     slot,
		duration: OneHour(),
		channel:  ChannelOffline,
		status:   StatusConfirmed,
		contact:  contact,
		amount:   amount,
		note:     note,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	number BookingNumber,
	venueID uuid.UUID,
	userID *uuid.UUID,
	date Date,
	slot Slot,
	duration Duration,
	channel Channel,
	status Status,
	contact Contact,
	amount Money,
	note string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		number:    number,
		venueID:   venueID,
		userID:    userID,
		date:      date,
		slot:      slot,
		duration:  duration,
		channel:   channel,
		status:    status,
		contact:   contact,
		amount:    amount,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Confirm moves pending to confirmed. Offline bookings are born confirmed,
// so confirming anything else is a transition error.
func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	return nil
}

// Cancel is terminal. Cancelling an already-cancelled booking is rejected
// rather than treated as a no-op; the caller is confused and should know.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Blocks() bool {
	return b.status.Blocks()
}

func (b *Booking) Interval() Interval {
	return NewInterval(b.slot, b.duration)
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Number() BookingNumber { return b.number }
func (b *Booking) VenueID() uuid.UUID    { return b.venueID }
func (b *Booking) UserID() *uuid.UUID    { return b.userID }
func (b *Booking) Date() Date            { return b.date }
func (b *Booking) Slot() Slot            { return b.slot }
func (b *Booking) Duration() Duration    { return b.duration }
func (b *Booking) Channel() Channel      { return b.channel }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Contact() Contact      { return b.contact }
func (b *Booking) Amount() Money         { return b.amount }
func (b *Booking) Note() string          { return b.note }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
