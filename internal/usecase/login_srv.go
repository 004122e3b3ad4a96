package usecase

import (
	"context"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/internal/dto/request"
	"nutriverse-auth/internal/dto/response"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

func (s *authService) RequestLoginOTP(ctx context.Context, req *request.LoginOTPRequest) (*response.OTPSentResponse, error) {
	mobile, ok := s.normalize(req.Mobile)
	if !ok {
		return nil, newError(ErrValidation, msgLoginMobile)
	}

	user, err := s.repo.User.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info("Login requested for unknown mobile", zap.String("mobile", utils.MaskMobile(mobile)))
		return nil, newError(ErrNotRegistered, msgUserNotFound)
	}

	return s.issueOTP(ctx, mobile, entity.OTPPurposeLogin, nil, msgLoginOTPSent)
}

func (s *authService) VerifyLoginOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.LoginResponse, error) {
	mobile, err := s.parseVerify(req)
	if err != nil {
		return nil, err
	}

	otp, err := s.redeemable(ctx, mobile, entity.OTPPurposeLogin, req.OTP)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Error("Login OTP matched but user is missing", zap.String("mobile", utils.MaskMobile(mobile)))
		return nil, newError(ErrUserNotFound, msgUserNotFound)
	}

	// Sign before consuming so a signing failure leaves the code redeemable.
	// The token is only returned by the request that flips is_used.
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Mobile)
	if err != nil {
		return nil, err
	}

	consumed, err := s.otp.MarkUsed(ctx, otp.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, newError(ErrInvalidOTP, msgInvalidOTP)
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return &response.LoginResponse{
		Message:   msgLoginSuccessful,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}
