package wire

import (
	"nutriverse-auth/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth mounts the OTP flows under /api/auth
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/signup/request-otp", authHandler.SignupRequestOTP)
	r.Post("/signup/verify-otp", authHandler.SignupVerifyOTP)

	r.Post("/login/request-otp", authHandler.LoginRequestOTP)
	r.Post("/login/verify-otp", authHandler.LoginVerifyOTP)
}
