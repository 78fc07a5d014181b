package response

import (
	"time"

	"boxbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type OTPChallengeResponse struct {
	Phone           string    `json:"phone"`
	ExpiresAt       time.Time `json:"expiresAt"`
	ResendAvailable time.Time `json:"resendAvailable"`
}

type LoginResponse struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Token  string    `json:"token"`
}

func FromChallengeResult(r *commands.ChallengeResult) *OTPChallengeResponse {
	return &OTPChallengeResponse{
		Phone:           r.Phone,
		ExpiresAt:       r.ExpiresAt,
		ResendAvailable: r.ResendAvailable,
	}
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID: r.UserID,
		Name:   r.Name,
		Role:   r.Role.String(),
		Token:  r.Token,
	}
}
