package adaptor

import (
	"encoding/json"
	"net/http"

	"nutriverse-auth/internal/dto/request"
	"nutriverse-auth/internal/usecase"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body."

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// SignupRequestOTP handles POST /api/auth/signup/request-otp
func (h *AuthHandler) SignupRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SignupOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.RequestSignupOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "request signup OTP", "Failed to request signup OTP.")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// SignupVerifyOTP handles POST /api/auth/signup/verify-otp
func (h *AuthHandler) SignupVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.VerifySignupOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify signup OTP", "Failed to verify signup OTP.")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// LoginRequestOTP handles POST /api/auth/login/request-otp
func (h *AuthHandler) LoginRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req request.LoginOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.RequestLoginOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "request login OTP", "Failed to request login OTP.")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// LoginVerifyOTP handles POST /api/auth/login/verify-otp
func (h *AuthHandler) LoginVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.VerifyLoginOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify login OTP", "Failed to verify login OTP.")
		return
	}

	utils.ResponseSuccess(w, resp)
}
