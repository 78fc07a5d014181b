package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/hold"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/clock"
	"boxbook/internal/pkg/config"
	"boxbook/internal/pkg/errs"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVenueNotFound           = errs.New("venue not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidBookingInput     = errs.New("invalid booking input")
	ErrSlotOutsideHours        = errs.New("slot outside operating hours")
	ErrSlotUnavailable         = errs.New("slot unavailable")
	ErrHoldExpired             = errs.New("slot hold expired")
	ErrHoldAlreadyConfirmed    = errs.New("hold already confirmed")
	ErrInvalidTransition       = errs.New("invalid booking transition")
	ErrForbidden               = errs.New("operation not allowed for this user")
	ErrNotVenueOwner           = errs.New("venue not owned by user")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	VenueSlug      string
	Date           string
	Slot           string
	DurationHours  float64
	PlayerMatching bool
	CustomerName   string
	CustomerPhone  string
	Note           string
}

type OfflineBookingInput struct {
	VenueID       uuid.UUID
	Date          string
	Slot          string
	CustomerName  string
	CustomerPhone string
	Note          string
}

// CreateBookingResult carries the pending booking plus the hold countdown the
// checkout page renders.
type CreateBookingResult struct {
	Booking       *booking.Booking
	Quote         booking.Quote
	HoldExpiresAt time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput, userID uuid.UUID) (*CreateBookingResult, error)
	ConfirmBooking(ctx context.Context, bookingID, userID uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*booking.Booking, error)
	CreateOfflineBooking(ctx context.Context, in OfflineBookingInput, ownerID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	venueRepo VenueRepository
	holds     HoldStore
	clock     clock.Clock
	cfg       config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	venueRepo VenueRepository,
	holds HoldStore,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		venueRepo: venueRepo,
		holds:     holds,
		clock:     clk,
		cfg:       cfg,
	}
}

// CreateBooking runs the public checkout: price the slot, then claim it with
// an availability check and insert inside one serializable transaction, then
// start the confirmation hold. The convenience fee is waived here; it only
// appears on discovery quotes.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	in CreateBookingInput,
	userID uuid.UUID,
) (*CreateBookingResult, error) {
	v, err := c.venueRepo.FindBySlug(ctx, in.VenueSlug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	date, err := booking.ParseDate(in.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	slot, err := booking.ParseSlot(in.Slot)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	duration, err := booking.NewDuration(in.DurationHours)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	contact, err := booking.NewContact(in.CustomerName, in.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	if !v.FitsGrid(slot, duration) {
		return nil, ErrSlotOutsideHours
	}

	quote, err := booking.NewQuote(v.QuoteInput(date, duration, in.PlayerMatching, false))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	now := c.clock.Now()
	b, err := booking.NewOnlineBooking(v.ID(), userID, date, slot, duration, contact, quote.Total, in.Note, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	if err := c.insertIfAvailable(ctx, b); err != nil {
		return nil, err
	}

	h := hold.New(b.ID(), userID, now, c.cfg.HoldTTL)
	if err := c.holds.SaveHold(ctx, h, c.cfg.HoldTTL); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateBookingResult{
		Booking:       b,
		Quote:         quote,
		HoldExpiresAt: h.ExpiresAt,
	}, nil
}

// ConfirmBooking completes checkout within the hold window. Expiry is either
// the Redis key vanishing or the countdown elapsing on a still-present hold;
// both read as the same error, and both release the pending row so the slot
// goes back on the grid for the retry.
func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, bookingID, userID uuid.UUID) (*booking.Booking, error) {
	h, err := c.holds.GetHold(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.releaseExpiredBooking(ctx, bookingID, userID)
			return nil, ErrHoldExpired
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if h.UserID != userID {
		return nil, ErrForbidden
	}

	now := c.clock.Now()
	if err := h.Confirm(now); err != nil {
		if errors.Is(err, hold.ErrAlreadyConfirmed) {
			return nil, ErrHoldAlreadyConfirmed
		}
		c.releaseExpiredBooking(ctx, bookingID, userID)
		if derr := c.holds.DeleteHold(ctx, bookingID); derr != nil {
			slog.Warn("failed to delete expired hold", "booking_id", bookingID, "error", derr.Error())
		}
		return nil, errs.Mark(err, ErrHoldExpired)
	}

	var confirmed *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := b.Confirm(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, booking.StatusPending); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		confirmed = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keep the confirmed hold around for the rest of its window so a repeat
	// confirm reports already-confirmed instead of expired.
	if err := c.holds.SaveHold(ctx, h, h.Remaining(now)); err != nil {
		slog.Warn("failed to persist confirmed hold", "booking_id", bookingID, "error", err.Error())
	}

	return confirmed, nil
}

// CancelBooking is allowed to the booking's customer and to the venue owner.
// Cancelling twice is a transition error, not a no-op.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*booking.Booking, error) {
	var cancelled *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.authorizeCancel(ctx, b, actorID); err != nil {
			return err
		}

		expected := b.Status()
		if err := b.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, expected); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.holds.DeleteHold(ctx, bookingID); err != nil {
		slog.Warn("failed to delete hold after cancel", "booking_id", bookingID, "error", err.Error())
	}

	return cancelled, nil
}

// CreateOfflineBooking is the owner blocking an hourly cell for a walk-in or
// phone booking; it is confirmed on creation and priced without add-ons.
func (c *bookingCommandsImpl) CreateOfflineBooking(
	ctx context.Context,
	in OfflineBookingInput,
	ownerID uuid.UUID,
) (*booking.Booking, error) {
	v, err := c.venueRepo.FindByID(ctx, in.VenueID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !v.IsOwnedBy(ownerID) {
		return nil, ErrNotVenueOwner
	}

	date, err := booking.ParseDate(in.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	slot, err := booking.ParseSlot(in.Slot)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	contact, err := booking.NewContact(in.CustomerName, in.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	if !v.FitsGrid(slot, booking.OneHour()) {
		return nil, ErrSlotOutsideHours
	}

	quote, err := booking.NewQuote(v.QuoteInput(date, booking.OneHour(), false, false))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	b, err := booking.NewOfflineBooking(v.ID(), date, slot, contact, quote.Total, in.Note, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	if err := c.insertIfAvailable(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// insertIfAvailable is the race-critical section: the overlap check and the
// insert share one serializable transaction, so of two concurrent claims on
// the same interval exactly one commits.
func (c *bookingCommandsImpl) insertIfAvailable(ctx context.Context, b *booking.Booking) error {
	return c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Bookings().IntervalsFor(ctx, b.VenueID(), b.Date())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !booking.IsAvailable(existing, b.Slot(), b.Duration()) {
			return ErrSlotUnavailable
		}
		if err := tx.Bookings().Insert(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// releaseExpiredBooking cancels the pending row an expired hold was
// protecting; without this the dead checkout would block the slot forever.
// Only the caller's own pending booking is touched, and the CAS keeps a
// concurrent confirm or cancel authoritative.
func (c *bookingCommandsImpl) releaseExpiredBooking(ctx context.Context, bookingID, userID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		if b.Status() != booking.StatusPending {
			return nil
		}
		if b.UserID() == nil || *b.UserID() != userID {
			return nil
		}
		if err := b.Cancel(); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, booking.StatusPending); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to release expired pending booking", "booking_id", bookingID, "error", err.Error())
	}
}

func (c *bookingCommandsImpl) authorizeCancel(ctx context.Context, b *booking.Booking, actorID uuid.UUID) error {
	if b.UserID() != nil && *b.UserID() == actorID {
		return nil
	}
	v, err := c.venueRepo.FindByID(ctx, b.VenueID())
	if err != nil {
		return errs.Mark(err, ErrForbidden)
	}
	if !v.IsOwnedBy(actorID) {
		return ErrForbidden
	}
	return nil
}
