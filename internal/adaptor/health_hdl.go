package adaptor

import (
	"context"
	"net/http"
	"time"

	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/dto/response"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	store repository.Pinger
	log   *zap.Logger
}

func NewHealthHandler(store repository.Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log,
	}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Health check failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusInternalServerError, response.HealthResponse{OK: false, DB: "disconnected"})
		return
	}

	utils.ResponseSuccess(w, response.HealthResponse{OK: true, DB: "connected"})
}
