package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boxbook/internal/domain/otp"
	"boxbook/internal/domain/user"
	"boxbook/internal/infra"
	"boxbook/internal/pkg/clock"
	"boxbook/internal/pkg/config"
	"boxbook/internal/pkg/errs"
	"boxbook/internal/pkg/jwt"
	"boxbook/internal/pkg/password"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPhone       = errs.New("invalid phone number")
	ErrOTPExpired         = errs.New("otp challenge expired")
	ErrOTPMismatch        = errs.New("otp code mismatch")
	ErrOTPTooManyAttempts = errs.New("too many otp attempts")
	ErrOTPResendTooSoon   = errs.New("otp resend cooldown active")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

// ChallengeResult is what the sign-in screen needs to drive its countdown;
// the code itself goes out through the SMS gateway, never the API.
type ChallengeResult struct {
	Phone           string
	ExpiresAt       time.Time
	ResendAvailable time.Time
}

type LoginResult struct {
	UserID uuid.UUID
	Name   string
	Role   user.Role
	Token  string
}

type AuthCommands interface {
	RequestOTP(ctx context.Context, phone string) (*ChallengeResult, error)
	VerifyOTP(ctx context.Context, phone, code, name string) (*LoginResult, error)
	OwnerLogin(ctx context.Context, phone, pass string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	otps  OTPStore
	jwt   *jwt.Service
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	otps OTPStore,
	jwtService *jwt.Service,
	clk clock.Clock,
	cfg config.BookingConfig,
) AuthCommands {
	return &authCommandsImpl{
		uow:   uow,
		otps:  otps,
		jwt:   jwtService,
		clock: clk,
		cfg:   cfg,
	}
}

// RequestOTP issues a fresh challenge unless one was issued within the resend
// cooldown. Reissuing replaces the old challenge outright, so stale codes die
// with it.
func (a *authCommandsImpl) RequestOTP(ctx context.Context, phoneRaw string) (*ChallengeResult, error) {
	phone, err := user.NewPhone(phoneRaw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	now := a.clock.Now()
	existing, err := a.otps.GetChallenge(ctx, phone.String())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing != nil && !existing.CanResend(now, a.cfg.OTPResendCooldown) {
		return nil, ErrOTPResendTooSoon
	}

	challenge, err := otp.NewChallenge(phone.String(), now, a.cfg.OTPTTL, a.cfg.OTPMaxAttempts)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate otp code")
	}
	if err := a.otps.SaveChallenge(ctx, challenge, a.cfg.OTPTTL); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// SMS delivery is out of band; the debug line stands in for it locally.
	slog.Debug("otp challenge issued", "phone", phone.String(), "code", challenge.Code)

	return &ChallengeResult{
		Phone:           phone.String(),
		ExpiresAt:       challenge.ExpiresAt,
		ResendAvailable: challenge.IssuedAt.Add(a.cfg.OTPResendCooldown),
	}, nil
}

// VerifyOTP exchanges a valid code for a session token, creating the customer
// account on first login. A wrong code burns an attempt and the decremented
// challenge is written back under its remaining TTL.
func (a *authCommandsImpl) VerifyOTP(ctx context.Context, phoneRaw, code, name string) (*LoginResult, error) {
	phone, err := user.NewPhone(phoneRaw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	challenge, err := a.otps.GetChallenge(ctx, phone.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOTPExpired
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := a.clock.Now()
	if err := challenge.Verify(code, now); err != nil {
		switch {
		case errors.Is(err, otp.ErrCodeMismatch):
			if saveErr := a.otps.SaveChallenge(ctx, challenge, challenge.ExpiresAt.Sub(now)); saveErr != nil {
				slog.Warn("failed to persist otp attempt count", "phone", phone.String(), "error", saveErr.Error())
			}
			return nil, ErrOTPMismatch
		case errors.Is(err, otp.ErrTooManyAttempts):
			return nil, ErrOTPTooManyAttempts
		default:
			return nil, errs.Mark(err, ErrOTPExpired)
		}
	}

	if err := a.otps.DeleteChallenge(ctx, phone.String()); err != nil {
		slog.Warn("failed to delete verified otp challenge", "phone", phone.String(), "error", err.Error())
	}

	u, err := a.upsertCustomer(ctx, phone, name, now)
	if err != nil {
		return nil, err
	}

	token, err := a.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: u.ID(),
		Name:   u.Name(),
		Role:   u.Role(),
		Token:  token,
	}, nil
}

// OwnerLogin is the dashboard's password login. Lookup and compare failures
// collapse into one error so phone numbers cannot be enumerated.
func (a *authCommandsImpl) OwnerLogin(ctx context.Context, phoneRaw, pass string) (*LoginResult, error) {
	phone, err := user.NewPhone(phoneRaw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	var u *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByPhone(ctx, phone)
		if err != nil {
			return ErrInvalidCredentials
		}
		if found.Role() != user.RoleOwner || found.PasswordHash() == nil {
			return ErrInvalidCredentials
		}
		if !found.IsActive() {
			return ErrUserInactive
		}
		if err := password.Compare(*found.PasswordHash(), pass); err != nil {
			return ErrInvalidCredentials
		}

		now := a.clock.Now()
		found.RecordLogin(now)
		if err := tx.Users().RecordLogin(ctx, found.ID(), now); err != nil {
			slog.Warn("failed to record owner login", "user_id", found.ID(), "error", err.Error())
		}
		u = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := a.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: u.ID(),
		Name:   u.Name(),
		Role:   u.Role(),
		Token:  token,
	}, nil
}

func (a *authCommandsImpl) upsertCustomer(ctx context.Context, phone user.Phone, name string, now time.Time) (*user.User, error) {
	var u *user.User
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByPhone(ctx, phone)
		switch {
		case err == nil:
			if !found.IsActive() {
				return ErrUserInactive
			}
			found.RecordLogin(now)
			if err := tx.Users().RecordLogin(ctx, found.ID(), now); err != nil {
				slog.Warn("failed to record login", "user_id", found.ID(), "error", err.Error())
			}
			u = found
			return nil

		case infra.IsKind(err, infra.KindNotFound):
			created := user.NewCustomer(phone, name)
			if err := tx.Users().Create(ctx, created); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			u = created
			return nil

		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
