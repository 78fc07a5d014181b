package holdstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"boxbook/internal/domain/hold"
	"boxbook/internal/domain/otp"
	"boxbook/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps holds and OTP challenges in Redis. Expiry is the key's TTL
// elapsing, so there are no timer goroutines to cancel and nothing fires
// after teardown. A missing key reads as expired.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func holdKey(bookingID uuid.UUID) string {
	return "hold:" + bookingID.String()
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func (s *Store) SaveHold(ctx context.Context, h *hold.Hold, ttl time.Duration) error {
	payload, err := json.Marshal(h)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal hold", err)
	}
	if err := s.client.Set(ctx, holdKey(h.BookingID), payload, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to save hold", err)
	}
	return nil
}

func (s *Store) GetHold(ctx context.Context, bookingID uuid.UUID) (*hold.Hold, error) {
	payload, err := s.client.Get(ctx, holdKey(bookingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get hold", err)
	}

	var h hold.Hold
	if err := json.Unmarshal(payload, &h); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal hold", err)
	}
	return &h, nil
}

func (s *Store) DeleteHold(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.client.Del(ctx, holdKey(bookingID)).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete hold", err)
	}
	return nil
}

func (s *Store) SaveChallenge(ctx context.Context, c *otp.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal otp challenge", err)
	}
	if err := s.client.Set(ctx, otpKey(c.Phone), payload, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to save otp challenge", err)
	}
	return nil
}

func (s *Store) GetChallenge(ctx context.Context, phone string) (*otp.Challenge, error) {
	payload, err := s.client.Get(ctx, otpKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("otp challenge not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get otp challenge", err)
	}

	var c otp.Challenge
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal otp challenge", err)
	}
	return &c, nil
}

func (s *Store) DeleteChallenge(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, otpKey(phone)).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete otp challenge", err)
	}
	return nil
}
