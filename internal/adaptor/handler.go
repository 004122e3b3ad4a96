package adaptor

import (
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, repo *repository.Repository, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Health: NewHealthHandler(repo.Store, log),
	}
}
