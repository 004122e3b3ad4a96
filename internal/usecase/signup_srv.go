package usecase

import (
	"context"
	"errors"
	"fmt"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/dto/request"
	"nutriverse-auth/internal/dto/response"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

func (s *authService) RequestSignupOTP(ctx context.Context, req *request.SignupOTPRequest) (*response.OTPSentResponse, error) {
	// 1. Validasi input
	req.Trim()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup request validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, newError(ErrValidation, msgFieldsRequired)
	}

	// Column widths of users.name and users.address
	if !utils.ValidateVar(req.Name, "max=120") {
		return nil, newError(ErrValidation, msgNameLength)
	}
	if !utils.ValidateVar(req.Address, "max=255") {
		return nil, newError(ErrValidation, msgAddressLength)
	}

	mobile, ok := s.normalize(req.Mobile)
	if !ok {
		return nil, newError(ErrValidation, msgSignupMobile)
	}

	if !utils.ValidateVar(req.Pincode, "len=6,digits") {
		return nil, newError(ErrValidation, msgPincode)
	}

	// 2. Cek mobile sudah terdaftar
	existingUser, err := s.repo.User.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, newError(ErrAlreadyRegistered, msgAlreadyExists)
	}

	// 3. Pending profile rides along in the OTP payload
	payload, err := entity.PendingProfile{
		Name:    req.Name,
		Address: req.Address,
		Pincode: req.Pincode,
	}.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode signup payload: %w", err)
	}

	// 4. Deliver, then persist
	return s.issueOTP(ctx, mobile, entity.OTPPurposeSignup, payload, msgSignupOTPSent)
}

func (s *authService) VerifySignupOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.MessageResponse, error) {
	mobile, err := s.parseVerify(req)
	if err != nil {
		return nil, err
	}

	otp, err := s.redeemable(ctx, mobile, entity.OTPPurposeSignup, req.OTP)
	if err != nil {
		return nil, err
	}

	profile, err := entity.DecodePendingProfile(otp.Payload)
	if err != nil {
		return nil, fmt.Errorf("signup OTP %d: %w", otp.ID, err)
	}

	user := &entity.User{
		Name:      profile.Name,
		Mobile:    mobile,
		Address:   profile.Address,
		Pincode:   profile.Pincode,
		CreatedAt: s.now(),
	}

	// Consuming the code and creating the user commit together
	err = s.repo.User.CreateWithOTP(ctx, user, otp.ID)
	switch {
	case errors.Is(err, repository.ErrOTPConsumed):
		return nil, newError(ErrInvalidOTP, msgInvalidOTP)
	case errors.Is(err, repository.ErrMobileTaken):
		return nil, newError(ErrAlreadyRegistered, msgAlreadyExists)
	case err != nil:
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("mobile", utils.MaskMobile(user.Mobile)))

	return &response.MessageResponse{Message: msgSignupSuccessful}, nil
}
