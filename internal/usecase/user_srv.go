package usecase

import (
	"context"

	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.ProfileResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// GetProfile resolves the id from a verified session token to the stored user.
func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.ProfileResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		us.log.Warn("Token refers to missing user", zap.Int64("user_id", userID))
		return nil, newError(ErrUserNotFound, msgUserNotFound)
	}

	return &response.ProfileResponse{User: response.UserToResponse(user)}, nil
}
