package usecase

import (
	"time"

	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/notifier"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
	OTP  OTPService
}

// Option customises services at construction time.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for OTP expiry and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gateway notifier.Gateway,
	tokens *utils.TokenManager,
	log *zap.Logger,
	opts ...Option,
) *Service {
	otp := NewOTPService(repo.OTP, config.OTP, log, opts...)

	return &Service{
		Auth: NewAuthService(repo, otp, gateway, tokens, config, log, opts...),
		User: NewUserService(repo.User, log),
		OTP:  otp,
	}
}
