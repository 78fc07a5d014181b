//go:build unit

package commands_test

import (
	"context"
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/domain/hold"
	"boxbook/internal/domain/otp"
	"boxbook/internal/domain/user"
	"boxbook/internal/domain/venue"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/clock"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the write-side ports. The booking repo derives
// IntervalsFor from what was inserted, so availability behaves like the real
// store without a database.

type fakeBookingRepo struct {
	entities map[uuid.UUID]*booking.Booking
	statuses map[uuid.UUID]booking.Status
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		entities: make(map[uuid.UUID]*booking.Booking),
		statuses: make(map[uuid.UUID]booking.Status),
	}
}

func (r *fakeBookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	r.entities[b.ID()] = b
	r.statuses[b.ID()] = b.Status()
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.entities[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return booking.ReconstructBooking(
		b.ID(), b.Number(), b.VenueID(), b.UserID(), b.Date(), b.Slot(),
		b.Duration(), b.Channel(), r.statuses[id], b.Contact(), b.Amount(),
		b.Note(), b.CreatedAt(), b.UpdatedAt(),
	), nil
}

func (r *fakeBookingRepo) IntervalsFor(_ context.Context, venueID uuid.UUID, date booking.Date) ([]booking.BookedInterval, error) {
	var out []booking.BookedInterval
	for id, b := range r.entities {
		if b.VenueID() != venueID || !b.Date().Equal(date) {
			continue
		}
		out = append(out, booking.BookedInterval{
			Slot:     b.Slot(),
			Duration: b.Duration(),
			Status:   r.statuses[id],
		})
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking, expected booking.Status) error {
	current, ok := r.statuses[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if current != expected {
		return infra.WrapRepoErr("stale booking status", nil, infra.KindConflict)
	}
	r.statuses[b.ID()] = b.Status()
	return nil
}

type fakeUserRepo struct {
	byPhone map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byPhone: make(map[string]*user.User)}
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone user.Phone) (*user.User, error) {
	u, ok := r.byPhone[phone.String()]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byPhone[u.Phone().String()]; ok {
		return infra.WrapRepoErr("phone already registered", nil, infra.KindDuplicateKey)
	}
	r.byPhone[u.Phone().String()] = u
	return nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeTx struct {
	bookings *fakeBookingRepo
	users    *fakeUserRepo
}

func (t *fakeTx) DB() shared.DBTX                    { return nil }
func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Users() shared.UserRepository       { return t.users }

type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: &fakeTx{bookings: newFakeBookingRepo(), users: newFakeUserRepo()}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeVenueRepo struct {
	venues []*venue.Venue
}

func (r *fakeVenueRepo) FindBySlug(_ context.Context, slug string) (*venue.Venue, error) {
	for _, v := range r.venues {
		if v.Slug() == slug {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("venue not found", nil, infra.KindNotFound)
}

func (r *fakeVenueRepo) FindByID(_ context.Context, id uuid.UUID) (*venue.Venue, error) {
	for _, v := range r.venues {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("venue not found", nil, infra.KindNotFound)
}

// fakeHoldStore emulates Redis key expiry against the mock clock: a read past
// the deadline behaves as if the key is gone.
type fakeHoldStore struct {
	clock     *clock.MockClock
	holds     map[uuid.UUID]*hold.Hold
	deadlines map[uuid.UUID]time.Time
}

func newFakeHoldStore(clk *clock.MockClock) *fakeHoldStore {
	return &fakeHoldStore{
		clock:     clk,
		holds:     make(map[uuid.UUID]*hold.Hold),
		deadlines: make(map[uuid.UUID]time.Time),
	}
}

func (s *fakeHoldStore) SaveHold(_ context.Context, h *hold.Hold, ttl time.Duration) error {
	copied := *h
	s.holds[h.BookingID] = &copied
	s.deadlines[h.BookingID] = s.clock.Now().Add(ttl)
	return nil
}

func (s *fakeHoldStore) GetHold(_ context.Context, bookingID uuid.UUID) (*hold.Hold, error) {
	h, ok := s.holds[bookingID]
	if !ok || !s.clock.Now().Before(s.deadlines[bookingID]) {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	copied := *h
	return &copied, nil
}

func (s *fakeHoldStore) DeleteHold(_ context.Context, bookingID uuid.UUID) error {
	delete(s.holds, bookingID)
	delete(s.deadlines, bookingID)
	return nil
}

type fakeOTPStore struct {
	clock      *clock.MockClock
	challenges map[string]*otp.Challenge
	deadlines  map[string]time.Time
}

func newFakeOTPStore(clk *clock.MockClock) *fakeOTPStore {
	return &fakeOTPStore{
		clock:      clk,
		challenges: make(map[string]*otp.Challenge),
		deadlines:  make(map[string]time.Time),
	}
}

func (s *fakeOTPStore) SaveChallenge(_ context.Context, c *otp.Challenge, ttl time.Duration) error {
	copied := *c
	s.challenges[c.Phone] = &copied
	s.deadlines[c.Phone] = s.clock.Now().Add(ttl)
	return nil
}

func (s *fakeOTPStore) GetChallenge(_ context.Context, phone string) (*otp.Challenge, error) {
	c, ok := s.challenges[phone]
	if !ok || !s.clock.Now().Before(s.deadlines[phone]) {
		return nil, infra.WrapRepoErr("otp challenge not found", nil, infra.KindNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *fakeOTPStore) DeleteChallenge(_ context.Context, phone string) error {
	delete(s.challenges, phone)
	delete(s.deadlines, phone)
	return nil
}
