//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/venue"
	"boxbook/internal/pkg/clock"
	"boxbook/internal/pkg/config"
	"boxbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

type BookingCommandsTestSuite struct {
	suite.Suite
	clock    *clock.MockClock
	uow      *fakeUoW
	holds    *fakeHoldStore
	venues   *fakeVenueRepo
	commands commands.BookingCommands

	ownerID uuid.UUID
	userID  uuid.UUID
	venue   *venue.Venue
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(testNow)
	s.uow = newFakeUoW()
	s.holds = newFakeHoldStore(s.clock)
	s.ownerID = uuid.New()
	s.userID = uuid.New()

	open, _ := booking.ParseSlot("6:00 AM")
	closeAt, _ := booking.ParseSlot("11:00 PM")
	v, err := venue.NewVenue(
		"powerplay-arena", "Powerplay Arena", "Andheri", "Mumbai",
		booking.MustMoney(1200_00), nil, open, closeAt,
		[]string{"floodlights"}, nil, s.ownerID,
	)
	s.Require().NoError(err)
	s.venue = v
	s.venues = &fakeVenueRepo{venues: []*venue.Venue{v}}

	s.commands = commands.NewBookingCommands(
		s.uow, s.venues, s.holds, s.clock, config.NewTestConfig().Booking,
	)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) createBooking(slot string, hours float64) (*commands.CreateBookingResult, error) {
	return s.commands.CreateBooking(context.Background(), commands.CreateBookingInput{
		VenueSlug:      "powerplay-arena",
		Date:           "2026-01-27",
		Slot:           slot,
		DurationHours:  hours,
		PlayerMatching: true,
		CustomerName:   "Rohan Mehta",
		CustomerPhone:  "+91 98200 12345",
	}, s.userID)
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	b := result.Booking
	s.Equal(booking.StatusPending, b.Status())
	s.Equal(booking.ChannelOnline, b.Channel())
	s.Equal(s.venue.ID(), b.VenueID())
	s.Require().NotNil(b.UserID())
	s.Equal(s.userID, *b.UserID())

	// 1200.00 rental + 150.00 matching + 243.00 GST, no convenience fee
	s.Equal(int64(1593_00), result.Quote.Total.Paise())
	s.Equal(int64(0), result.Quote.ConvenienceFee.Paise())
	s.Equal(result.Quote.Total, b.Amount())

	s.Equal(testNow.Add(5*time.Minute), result.HoldExpiresAt)
	h, err := s.holds.GetHold(context.Background(), b.ID())
	s.Require().NoError(err)
	s.Equal(s.userID, h.UserID)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsOverlap() {
	_, err := s.createBooking("7:00 PM", 2)
	s.Require().NoError(err)

	// 8:00 PM falls inside [7:00 PM, 9:00 PM)
	_, err = s.createBooking("8:00 PM", 1)
	s.ErrorIs(err, commands.ErrSlotUnavailable)

	// Back-to-back is fine
	_, err = s.createBooking("9:00 PM", 1)
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestCreateBookingCancelledDoesNotBlock() {
	first, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)
	_, err = s.commands.CancelBooking(context.Background(), first.Booking.ID(), s.userID)
	s.Require().NoError(err)

	_, err = s.createBooking("7:00 PM", 1)
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestCreateBookingValidation() {
	_, err := s.commands.CreateBooking(context.Background(), commands.CreateBookingInput{
		VenueSlug:     "no-such-venue",
		Date:          "2026-01-27",
		Slot:          "7:00 PM",
		DurationHours: 1,
		CustomerName:  "Rohan Mehta",
		CustomerPhone: "+91 98200 12345",
	}, s.userID)
	s.ErrorIs(err, commands.ErrVenueNotFound)

	_, err = s.createBooking("19:00", 1)
	s.ErrorIs(err, commands.ErrInvalidBookingInput)

	_, err = s.createBooking("7:00 PM", 0.75)
	s.ErrorIs(err, commands.ErrInvalidBookingInput)

	// 10:30 PM + 2h runs past the 11:00 PM close
	_, err = s.createBooking("10:30 PM", 2)
	s.ErrorIs(err, commands.ErrSlotOutsideHours)

	// Yesterday
	_, err = s.commands.CreateBooking(context.Background(), commands.CreateBookingInput{
		VenueSlug:     "powerplay-arena",
		Date:          "2026-01-19",
		Slot:          "7:00 PM",
		DurationHours: 1,
		CustomerName:  "Rohan Mehta",
		CustomerPhone: "+91 98200 12345",
	}, s.userID)
	s.ErrorIs(err, commands.ErrInvalidBookingInput)
}

func (s *BookingCommandsTestSuite) TestConfirmBooking() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	s.clock.Advance(3 * time.Minute)
	confirmed, err := s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), s.userID)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, confirmed.Status())

	stored, err := s.uow.tx.bookings.FindByID(context.Background(), result.Booking.ID())
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, stored.Status())
}

func (s *BookingCommandsTestSuite) TestConfirmBookingTwice() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	_, err = s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), s.userID)
	s.Require().NoError(err)

	_, err = s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), s.userID)
	s.ErrorIs(err, commands.ErrHoldAlreadyConfirmed)
}

func (s *BookingCommandsTestSuite) TestConfirmBookingAfterHoldExpiry() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	// Exactly at the boundary the hold is gone, and the pending row it was
	// protecting is released with it
	s.clock.Advance(5 * time.Minute)
	_, err = s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), s.userID)
	s.ErrorIs(err, commands.ErrHoldExpired)

	stored, err := s.uow.tx.bookings.FindByID(context.Background(), result.Booking.ID())
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, stored.Status())
}

func (s *BookingCommandsTestSuite) TestExpiredHoldFreesSlotForRebooking() {
	first, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	s.clock.Advance(6 * time.Minute)
	_, err = s.commands.ConfirmBooking(context.Background(), first.Booking.ID(), s.userID)
	s.Require().ErrorIs(err, commands.ErrHoldExpired)

	// The failed checkout restarts from scratch and the slot is free again
	second, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)
	s.NotEqual(first.Booking.ID(), second.Booking.ID())
	s.Equal(booking.StatusPending, second.Booking.Status())
}

func (s *BookingCommandsTestSuite) TestExpiredHoldNotReleasedByStranger() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	s.clock.Advance(6 * time.Minute)
	_, err = s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), uuid.New())
	s.ErrorIs(err, commands.ErrHoldExpired)

	// Someone else's confirm attempt must not cancel the booking
	stored, err := s.uow.tx.bookings.FindByID(context.Background(), result.Booking.ID())
	s.Require().NoError(err)
	s.Equal(booking.StatusPending, stored.Status())
}

func (s *BookingCommandsTestSuite) TestConfirmBookingWrongUser() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	_, err = s.commands.ConfirmBooking(context.Background(), result.Booking.ID(), uuid.New())
	s.ErrorIs(err, commands.ErrForbidden)
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	cancelled, err := s.commands.CancelBooking(context.Background(), result.Booking.ID(), s.userID)
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, cancelled.Status())

	_, err = s.commands.CancelBooking(context.Background(), result.Booking.ID(), s.userID)
	s.ErrorIs(err, commands.ErrInvalidTransition)
}

func (s *BookingCommandsTestSuite) TestCancelBookingByVenueOwner() {
	result, err := s.createBooking("7:00 PM", 1)
	s.Require().NoError(err)

	_, err = s.commands.CancelBooking(context.Background(), result.Booking.ID(), uuid.New())
	s.ErrorIs(err, commands.ErrForbidden)

	_, err = s.commands.CancelBooking(context.Background(), result.Booking.ID(), s.ownerID)
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestCancelBookingNotFound() {
	_, err := s.commands.CancelBooking(context.Background(), uuid.New(), s.userID)
	s.ErrorIs(err, commands.ErrBookingNotFound)
}

func (s *BookingCommandsTestSuite) TestCreateOfflineBooking() {
	b, err := s.commands.CreateOfflineBooking(context.Background(), commands.OfflineBookingInput{
		VenueID:       s.venue.ID(),
		Date:          "2026-01-27",
		Slot:          "6:00 PM",
		CustomerName:  "Walk In",
		CustomerPhone: "9820012345",
		Note:          "paid cash",
	}, s.ownerID)
	s.Require().NoError(err)

	s.Equal(booking.StatusConfirmed, b.Status())
	s.Equal(booking.ChannelOffline, b.Channel())
	s.Nil(b.UserID())
	s.Equal(60, b.Duration().Minutes())
	// 1200.00 + 18% GST, no add-ons
	s.Equal(int64(1416_00), b.Amount().Paise())
}

func (s *BookingCommandsTestSuite) TestCreateOfflineBookingNotOwner() {
	_, err := s.commands.CreateOfflineBooking(context.Background(), commands.OfflineBookingInput{
		VenueID:       s.venue.ID(),
		Date:          "2026-01-27",
		Slot:          "6:00 PM",
		CustomerName:  "Walk In",
		CustomerPhone: "9820012345",
	}, s.userID)
	s.ErrorIs(err, commands.ErrNotVenueOwner)
}

func (s *BookingCommandsTestSuite) TestOfflineBookingBlocksOnlineSlot() {
	_, err := s.commands.CreateOfflineBooking(context.Background(), commands.OfflineBookingInput{
		VenueID:       s.venue.ID(),
		Date:          "2026-01-27",
		Slot:          "7:00 PM",
		CustomerName:  "Walk In",
		CustomerPhone: "9820012345",
	}, s.ownerID)
	s.Require().NoError(err)

	_, err = s.createBooking("7:00 PM", 1)
	s.ErrorIs(err, commands.ErrSlotUnavailable)
}
