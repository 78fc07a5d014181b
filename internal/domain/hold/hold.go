package hold

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExpired          = errors.New("slot hold expired")
	ErrAlreadyConfirmed = errors.New("hold already confirmed")
)

type Status string

const (
	StatusHeld      Status = "held"
	StatusConfirmed Status = "confirmed"
	StatusExpired   Status = "expired"
)

// Hold is the advisory checkout reservation: it gates the confirm action
// behind a countdown but is never a lock. Availability is re-validated in
// the booking transaction regardless of the hold's state.
type Hold struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Status    Status
	ExpiresAt time.Time
}

func New(bookingID, userID uuid.UUID, now time.Time, ttl time.Duration) *Hold {
	return &Hold{
		BookingID: bookingID,
		UserID:    userID,
		Status:    StatusHeld,
		ExpiresAt: now.Add(ttl),
	}
}

func (h *Hold) ExpiredAt(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Confirm transitions held -> confirmed; after the countdown elapses the
// only way forward is a fresh hold.
func (h *Hold) Confirm(now time.Time) error {
	switch {
	case h.Status == StatusConfirmed:
		return ErrAlreadyConfirmed
	case h.Status == StatusExpired || h.ExpiredAt(now):
		h.Status = StatusExpired
		return ErrExpired
	}
	h.Status = StatusConfirmed
	return nil
}

// Remaining is what the countdown widget shows; zero once expired.
func (h *Hold) Remaining(now time.Time) time.Duration {
	if h.ExpiredAt(now) {
		return 0
	}
	return h.ExpiresAt.Sub(now)
}
