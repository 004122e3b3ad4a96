package adaptor

import (
	"net/http"

	"nutriverse-auth/internal/usecase"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/auth/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by auth middleware)
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing auth token.")
		return
	}

	mobile, _ := utils.GetMobileFromContext(r.Context())
	h.log.Debug("Profile requested",
		zap.Int64("user_id", userID),
		zap.String("mobile", utils.MaskMobile(mobile)))

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile", "Failed to fetch profile.")
		return
	}

	utils.ResponseSuccess(w, profile)
}
