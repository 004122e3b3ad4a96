package usecase

import (
	"context"
	"time"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/dto/request"
	"nutriverse-auth/internal/dto/response"
	"nutriverse-auth/internal/notifier"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

// AuthService runs the signup and login OTP flows.
type AuthService interface {
	RequestSignupOTP(ctx context.Context, req *request.SignupOTPRequest) (*response.OTPSentResponse, error)
	VerifySignupOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.MessageResponse, error)
	RequestLoginOTP(ctx context.Context, req *request.LoginOTPRequest) (*response.OTPSentResponse, error)
	VerifyLoginOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.LoginResponse, error)
}

type authService struct {
	repo    *repository.Repository
	otp     OTPService
	gateway notifier.Gateway
	tokens  *utils.TokenManager
	config  *utils.Config
	now     func() time.Time
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	otp OTPService,
	gateway notifier.Gateway,
	tokens *utils.TokenManager,
	config *utils.Config,
	log *zap.Logger,
	opts ...Option,
) AuthService {
	o := applyOptions(opts)
	return &authService{
		repo:    repo,
		otp:     otp,
		gateway: gateway,
		tokens:  tokens,
		config:  config,
		now:     o.now,
		log:     log.With(zap.String("service", "auth")),
	}
}

// ==================== HELPER METHODS ====================

func (s *authService) normalize(mobile string) (string, bool) {
	return utils.NormalizeMobile(mobile, s.config.OTP.CountryCode)
}

// issueOTP delivers a fresh code before storing it. A failed delivery stores nothing.
func (s *authService) issueOTP(ctx context.Context, mobile string, purpose entity.OTPPurpose, payload []byte, message string) (*response.OTPSentResponse, error) {
	code, err := s.otp.Generate()
	if err != nil {
		return nil, err
	}

	result := s.gateway.Send(ctx, mobile, code, string(purpose))
	if !result.Delivered {
		s.log.Warn("OTP delivery failed",
			zap.String("channel", result.Channel),
			zap.String("purpose", string(purpose)),
			zap.String("mobile", utils.MaskMobile(mobile)),
			zap.String("detail", result.Detail),
		)
		return nil, &Error{Kind: ErrDeliveryFailed, Message: msgDeliveryFailed, Detail: result.Detail}
	}

	otp, err := s.otp.Create(ctx, mobile, purpose, payload, code)
	if err != nil {
		return nil, err
	}

	s.log.Info("OTP issued",
		zap.Int64("otp_id", otp.ID),
		zap.String("purpose", string(purpose)),
		zap.String("channel", result.Channel),
		zap.String("mobile", utils.MaskMobile(mobile)),
	)

	return &response.OTPSentResponse{
		Message:  message,
		Mobile:   mobile,
		DevOTP:   result.DevCode,
		Provider: result.Channel,
	}, nil
}

// parseVerify trims and checks the shape of a verify request and returns the
// canonical mobile.
func (s *authService) parseVerify(req *request.VerifyOTPRequest) (string, error) {
	req.Trim()

	mobile, ok := s.normalize(req.Mobile)
	if !ok || len(utils.ValidateStruct(req)) > 0 {
		return "", newError(ErrValidation, msgVerifyShape)
	}
	return mobile, nil
}

// redeemable returns the authoritative code for mobile and purpose when it
// matches the supplied one. Missing and mismatching codes are reported the
// same way.
func (s *authService) redeemable(ctx context.Context, mobile string, purpose entity.OTPPurpose, code string) (*entity.OTP, error) {
	otp, err := s.otp.LatestValid(ctx, mobile, purpose)
	if err != nil {
		return nil, err
	}

	if otp == nil || !codesEqual(otp.Code, code) {
		s.log.Warn("OTP rejected",
			zap.String("purpose", string(purpose)),
			zap.String("mobile", utils.MaskMobile(mobile)),
			zap.Bool("outstanding", otp != nil),
		)
		return nil, newError(ErrInvalidOTP, msgInvalidOTP)
	}

	return otp, nil
}
