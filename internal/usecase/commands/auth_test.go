//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"boxbook/internal/domain/user"
	"boxbook/internal/pkg/clock"
	"boxbook/internal/pkg/config"
	"boxbook/internal/pkg/jwt"
	"boxbook/internal/pkg/password"
	"boxbook/internal/usecase/commands"

	"github.com/stretchr/testify/suite"
)

const testPhone = "+91 98200 12345"

type AuthCommandsTestSuite struct {
	suite.Suite
	clock    *clock.MockClock
	uow      *fakeUoW
	otps     *fakeOTPStore
	jwt      *jwt.Service
	commands commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(testNow)
	s.uow = newFakeUoW()
	s.otps = newFakeOTPStore(s.clock)
	s.jwt = jwt.NewService("test-secret", time.Hour)
	s.commands = commands.NewAuthCommands(
		s.uow, s.otps, s.jwt, s.clock, config.NewTestConfig().Booking,
	)
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) issuedCode() string {
	c, ok := s.otps.challenges[testPhone]
	s.Require().True(ok)
	return c.Code
}

func (s *AuthCommandsTestSuite) wrongCode() string {
	wrong := "000000"
	if s.issuedCode() == wrong {
		wrong = "000001"
	}
	return wrong
}

func (s *AuthCommandsTestSuite) TestRequestOTP() {
	result, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	s.Equal(testPhone, result.Phone)
	s.Equal(testNow.Add(5*time.Minute), result.ExpiresAt)
	s.Equal(testNow.Add(30*time.Second), result.ResendAvailable)
	s.Len(s.issuedCode(), 6)
}

func (s *AuthCommandsTestSuite) TestRequestOTPInvalidPhone() {
	_, err := s.commands.RequestOTP(context.Background(), "not-a-phone")
	s.ErrorIs(err, commands.ErrInvalidPhone)
}

func (s *AuthCommandsTestSuite) TestRequestOTPResendCooldown() {
	_, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	_, err = s.commands.RequestOTP(context.Background(), testPhone)
	s.ErrorIs(err, commands.ErrOTPResendTooSoon)

	s.clock.Advance(30 * time.Second)
	_, err = s.commands.RequestOTP(context.Background(), testPhone)
	s.NoError(err)
}

func (s *AuthCommandsTestSuite) TestVerifyOTPCreatesCustomer() {
	_, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	result, err := s.commands.VerifyOTP(context.Background(), testPhone, s.issuedCode(), "Rohan Mehta")
	s.Require().NoError(err)

	s.Equal(user.RoleCustomer, result.Role)
	s.Equal("Rohan Mehta", result.Name)
	s.NotEmpty(result.Token)

	claims, err := s.jwt.ValidateToken(result.Token)
	s.Require().NoError(err)
	s.Equal(result.UserID, claims.UserID)
	s.Equal("customer", claims.Role)

	// Challenge is single-use
	_, err = s.commands.VerifyOTP(context.Background(), testPhone, "000000", "Rohan Mehta")
	s.ErrorIs(err, commands.ErrOTPExpired)
}

func (s *AuthCommandsTestSuite) TestVerifyOTPExistingUser() {
	phone, err := user.NewPhone(testPhone)
	s.Require().NoError(err)
	existing := user.NewCustomer(phone, "Rohan Mehta")
	s.Require().NoError(s.uow.tx.users.Create(context.Background(), existing))

	_, err = s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	result, err := s.commands.VerifyOTP(context.Background(), testPhone, s.issuedCode(), "Someone Else")
	s.Require().NoError(err)
	s.Equal(existing.ID(), result.UserID)
	s.Equal("Rohan Mehta", result.Name)
}

func (s *AuthCommandsTestSuite) TestVerifyOTPWrongCode() {
	_, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	_, err = s.commands.VerifyOTP(context.Background(), testPhone, s.wrongCode(), "Rohan Mehta")
	s.ErrorIs(err, commands.ErrOTPMismatch)

	// The burned attempt survives the round trip
	s.Equal(1, s.otps.challenges[testPhone].Attempts)

	_, err = s.commands.VerifyOTP(context.Background(), testPhone, s.issuedCode(), "Rohan Mehta")
	s.NoError(err)
}

func (s *AuthCommandsTestSuite) TestVerifyOTPAttemptsExhausted() {
	_, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	for range 5 {
		_, err = s.commands.VerifyOTP(context.Background(), testPhone, s.wrongCode(), "Rohan Mehta")
		s.ErrorIs(err, commands.ErrOTPMismatch)
	}

	// Even the right code is refused once attempts are gone
	_, err = s.commands.VerifyOTP(context.Background(), testPhone, s.issuedCode(), "Rohan Mehta")
	s.ErrorIs(err, commands.ErrOTPTooManyAttempts)
}

func (s *AuthCommandsTestSuite) TestVerifyOTPExpired() {
	_, err := s.commands.RequestOTP(context.Background(), testPhone)
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Minute)
	_, err = s.commands.VerifyOTP(context.Background(), testPhone, s.issuedCode(), "Rohan Mehta")
	s.ErrorIs(err, commands.ErrOTPExpired)
}

func (s *AuthCommandsTestSuite) TestOwnerLogin() {
	hash, err := password.Hash("dashboard-pass")
	s.Require().NoError(err)
	phone, err := user.NewPhone(testPhone)
	s.Require().NoError(err)
	owner := user.NewOwner(phone, "Anita Desai", hash)
	s.Require().NoError(s.uow.tx.users.Create(context.Background(), owner))

	result, err := s.commands.OwnerLogin(context.Background(), testPhone, "dashboard-pass")
	s.Require().NoError(err)
	s.Equal(owner.ID(), result.UserID)
	s.Equal(user.RoleOwner, result.Role)
	s.NotEmpty(result.Token)

	_, err = s.commands.OwnerLogin(context.Background(), testPhone, "wrong-pass")
	s.ErrorIs(err, commands.ErrInvalidCredentials)

	_, err = s.commands.OwnerLogin(context.Background(), "+91 90000 00000", "dashboard-pass")
	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsTestSuite) TestOwnerLoginRejectsCustomer() {
	phone, err := user.NewPhone(testPhone)
	s.Require().NoError(err)
	customer := user.NewCustomer(phone, "Rohan Mehta")
	s.Require().NoError(s.uow.tx.users.Create(context.Background(), customer))

	_, err = s.commands.OwnerLogin(context.Background(), testPhone, "anything")
	s.ErrorIs(err, commands.ErrInvalidCredentials)
}
