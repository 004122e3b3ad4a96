package adaptor

import (
	"errors"
	"net/http"

	"nutriverse-auth/internal/dto/response"
	"nutriverse-auth/internal/usecase"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase error kinds to HTTP statuses. Anything that
// is not a *usecase.Error is logged and answered with fallback.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation, fallback string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, fallback)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidOTP):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, svcErr.Message)

	case errors.Is(err, usecase.ErrAlreadyRegistered):
		log.Warn(operation+" failed - already registered", zap.Error(err))
		utils.ResponseConflict(w, svcErr.Message)

	case errors.Is(err, usecase.ErrNotRegistered):
		utils.ResponseJSON(w, http.StatusNotFound, response.NotRegisteredResponse{
			Message:    svcErr.Message,
			ShowSignup: true,
		})

	case errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, svcErr.Message)

	case errors.Is(err, usecase.ErrDeliveryFailed):
		log.Error(operation+" failed - delivery", zap.Error(err))
		utils.ResponseBadGateway(w, svcErr.Message)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, fallback)
	}
}
