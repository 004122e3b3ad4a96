package wire

import (
	"nutriverse-auth/internal/adaptor"
	"nutriverse-auth/pkg/middleware"
	"nutriverse-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	// Profile - requires a valid session token
	r.With(middleware.AuthBearer(tokens, log)).Get("/profile", userHandler.GetProfile)
}
