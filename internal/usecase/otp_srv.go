package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

// OTPService issues, looks up and consumes one-time codes.
type OTPService interface {
	Generate() (string, error)
	Create(ctx context.Context, mobile string, purpose entity.OTPPurpose, payload []byte, code string) (*entity.OTP, error)
	LatestValid(ctx context.Context, mobile string, purpose entity.OTPPurpose) (*entity.OTP, error)
	MarkUsed(ctx context.Context, otpID int64) (bool, error)
	PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type otpService struct {
	otpRepo repository.OTPRepository
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewOTPService(otpRepo repository.OTPRepository, config utils.OTPConfig, log *zap.Logger, opts ...Option) OTPService {
	o := applyOptions(opts)
	return &otpService{
		otpRepo: otpRepo,
		ttl:     config.TTL(),
		now:     o.now,
		log:     log.With(zap.String("service", "otp")),
	}
}

func (s *otpService) Generate() (string, error) {
	return utils.GenerateOTP(utils.OTPLength)
}

// Create stores a new code valid for the configured TTL. An empty code is
// generated here; callers that deliver before persisting pass their own.
func (s *otpService) Create(ctx context.Context, mobile string, purpose entity.OTPPurpose, payload []byte, code string) (*entity.OTP, error) {
	if !purpose.Valid() {
		return nil, fmt.Errorf("unknown OTP purpose %q", purpose)
	}

	if code == "" {
		generated, err := s.Generate()
		if err != nil {
			return nil, err
		}
		code = generated
	}
	if len(code) != utils.OTPLength || !utils.IsDigits(code) {
		return nil, fmt.Errorf("OTP must be %d digits", utils.OTPLength)
	}

	now := s.now()
	otp := &entity.OTP{
		Mobile:    mobile,
		Code:      code,
		Purpose:   purpose,
		Payload:   payload,
		IsUsed:    false,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, err
	}

	s.log.Debug("OTP stored",
		zap.Int64("otp_id", otp.ID),
		zap.String("purpose", string(purpose)),
		zap.String("mobile", utils.MaskMobile(mobile)),
		zap.Time("expires_at", otp.ExpiresAt),
	)

	return otp, nil
}

func (s *otpService) LatestValid(ctx context.Context, mobile string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	return s.otpRepo.FindLatestValid(ctx, mobile, purpose, s.now())
}

func (s *otpService) MarkUsed(ctx context.Context, otpID int64) (bool, error) {
	return s.otpRepo.MarkAsUsed(ctx, otpID)
}

// PurgeExpired removes codes that expired more than olderThan ago.
func (s *otpService) PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	removed, err := s.otpRepo.DeleteExpired(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, err
	}

	s.log.Info("Expired OTPs purged", zap.Int64("removed", removed))
	return removed, nil
}

// codesEqual compares in constant time so timing does not reveal how many
// leading digits matched.
func codesEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
