package api

import (
	"errors"
	"net/http"

	reqdto "boxbook/internal/handler/dto/request"
	resdto "boxbook/internal/handler/dto/response"
	"boxbook/internal/handler/httperr"
	"boxbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{commands: authCommands}
}

// @Summary Request OTP
// @Description Send a one-time code to the given phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RequestOTPRequest true "Phone number"
// @Success 200 {object} resdto.OTPChallengeResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /auth/otp [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req reqdto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPhone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
		case errors.Is(err, commands.ErrOTPResendTooSoon):
			httperr.AbortWithError(c, http.StatusTooManyRequests, err, "Please wait before requesting another code", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromChallengeResult(result))
}

// @Summary Verify OTP
// @Description Exchange a one-time code for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyOTPRequest true "Phone, code and display name"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req reqdto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.VerifyOTP(c.Request.Context(), req.Phone, req.Code, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPhone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
		case errors.Is(err, commands.ErrOTPMismatch):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Incorrect code", nil)
		case errors.Is(err, commands.ErrOTPExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Code expired, request a new one", nil)
		case errors.Is(err, commands.ErrOTPTooManyAttempts):
			httperr.AbortWithError(c, http.StatusTooManyRequests, err, "Too many attempts, request a new code", nil)
		case errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account disabled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Owner login
// @Description Dashboard login with phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.OwnerLoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/owner/login [post]
func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var req reqdto.OwnerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.OwnerLogin(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid phone or password", nil)
		case errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account disabled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}
