package commands

import (
	"context"
	"time"

	"boxbook/internal/domain/hold"
	"boxbook/internal/domain/otp"
	"boxbook/internal/domain/venue"

	"github.com/google/uuid"
)

// Write-side ports. Venues are reference data with their own store; holds and
// OTP challenges live in Redis where the TTL does the expiring.

type VenueRepository interface {
	FindBySlug(ctx context.Context, slug string) (*venue.Venue, error)
	FindByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error)
}

type HoldStore interface {
	SaveHold(ctx context.Context, h *hold.Hold, ttl time.Duration) error
	GetHold(ctx context.Context, bookingID uuid.UUID) (*hold.Hold, error)
	DeleteHold(ctx context.Context, bookingID uuid.UUID) error
}

type OTPStore interface {
	SaveChallenge(ctx context.Context, c *otp.Challenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, phone string) (*otp.Challenge, error)
	DeleteChallenge(ctx context.Context, phone string) error
}
