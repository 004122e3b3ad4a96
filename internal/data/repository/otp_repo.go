package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/pkg/database"
	"nutriverse-auth/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindLatestValid(ctx context.Context, mobile string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error)
	MarkAsUsed(ctx context.Context, otpID int64) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

const markOTPUsedQuery = `
		UPDATE otp_codes
		SET is_used = TRUE
		WHERE id = $1 AND is_used = FALSE
	`

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otp_codes (mobile, otp, purpose, payload_json,
		                       is_used, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		otp.Mobile,
		otp.Code,
		string(otp.Purpose),
		otp.Payload,
		otp.IsUsed,
		otp.ExpiresAt,
		otp.CreatedAt,
	).Scan(&otp.ID)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("mobile", utils.MaskMobile(otp.Mobile)),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("create %s OTP: %w", otp.Purpose, err)
	}

	return nil
}

// FindLatestValid returns the newest unused code that is still valid at now,
// or nil when there is none.
func (r *otpRepository) FindLatestValid(ctx context.Context, mobile string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error) {
	query := `
		SELECT id, mobile, otp, purpose, payload_json,
		       is_used, expires_at, created_at
		FROM otp_codes
		WHERE mobile = $1
		  AND purpose = $2
		  AND is_used = FALSE
		  AND expires_at > $3
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, mobile, string(purpose), now).Scan(
		&otp.ID,
		&otp.Mobile,
		&otp.Code,
		(*string)(&otp.Purpose),
		&otp.Payload,
		&otp.IsUsed,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("mobile", utils.MaskMobile(mobile)),
			zap.String("purpose", string(purpose)),
		)
		return nil, fmt.Errorf("find valid %s OTP: %w", purpose, err)
	}

	return &otp, nil
}

// MarkAsUsed flips is_used exactly once. It reports false when the code was
// already used or does not exist, so concurrent callers get one winner.
func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID int64) (bool, error) {
	result, err := r.db.Exec(ctx, markOTPUsedQuery, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.Int64("otp_id", otpID),
		)
		return false, fmt.Errorf("mark OTP %d as used: %w", otpID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM otp_codes WHERE expires_at < $1`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to clean expired OTPs", zap.Error(err))
		return 0, fmt.Errorf("delete OTPs expired before %s: %w", before.Format(time.RFC3339), err)
	}

	return result.RowsAffected(), nil
}
