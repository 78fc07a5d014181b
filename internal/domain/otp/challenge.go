package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrChallengeExpired = errors.New("otp challenge expired")
	ErrTooManyAttempts  = errors.New("too many otp attempts")
	ErrCodeMismatch     = errors.New("otp code mismatch")
	ErrResendTooSoon    = errors.New("otp resend cooldown active")
)

// Challenge is one outstanding verification: form entry put it in flight,
// a matching code moves it to verified, the TTL moves it to expired.
type Challenge struct {
	Phone       string
	Code        string
	Attempts    int
	MaxAttempts int
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

func NewChallenge(phone string, now time.Time, ttl time.Duration, maxAttempts int) (*Challenge, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	return &Challenge{
		Phone:       phone,
		Code:        code,
		MaxAttempts: maxAttempts,
		IssuedAt:    now,
		ExpiresAt:   now.Add(ttl),
	}, nil
}

// Verify checks a submitted code. A mismatch burns an attempt; expiry and
// attempt exhaustion are terminal and force a fresh challenge.
func (c *Challenge) Verify(code string, now time.Time) error {
	if !now.Before(c.ExpiresAt) {
		return ErrChallengeExpired
	}
	if c.Attempts >= c.MaxAttempts {
		return ErrTooManyAttempts
	}
	if c.Code != code {
		c.Attempts++
		return ErrCodeMismatch
	}
	return nil
}

// CanResend enforces the resend cooldown from the sign-in screen.
func (c *Challenge) CanResend(now time.Time, cooldown time.Duration) bool {
	return !now.Before(c.IssuedAt.Add(cooldown))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
