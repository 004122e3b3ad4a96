package repository

import (
	"context"
	"errors"
	"fmt"

	"nutriverse-auth/internal/data/entity"
	"nutriverse-auth/pkg/database"
	"nutriverse-auth/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByMobile(ctx context.Context, mobile string) (*entity.User, error)
	CreateWithOTP(ctx context.Context, user *entity.User, otpID int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const selectUserColumns = `
		SELECT id, name, mobile, address, pincode, created_at
		FROM users
	`

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := ur.findOne(ctx, selectUserColumns+` WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}
	return user, nil
}

func (ur *userRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	user, err := ur.findOne(ctx, selectUserColumns+` WHERE mobile = $1`, mobile)
	if err != nil {
		ur.log.Error("Failed to find user by mobile",
			zap.Error(err),
			zap.String("mobile", utils.MaskMobile(mobile)),
		)
		return nil, fmt.Errorf("find user by mobile: %w", err)
	}
	return user, nil
}

// findOne returns nil, nil when no row matches
func (ur *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Mobile,
		&user.Address,
		&user.Pincode,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateWithOTP consumes the signup code and inserts the user in one
// transaction. If either step fails nothing is written, so the code stays
// redeemable. ErrOTPConsumed and ErrMobileTaken report the two races.
func (ur *userRepository) CreateWithOTP(ctx context.Context, user *entity.User, otpID int64) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		ur.log.Error("Failed to begin signup transaction", zap.Error(err))
		return fmt.Errorf("begin signup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, markOTPUsedQuery, otpID)
	if err != nil {
		ur.log.Error("Failed to consume signup OTP",
			zap.Error(err),
			zap.Int64("otp_id", otpID),
		)
		return fmt.Errorf("consume signup OTP %d: %w", otpID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrOTPConsumed
	}

	query := `
		INSERT INTO users (name, mobile, address, pincode, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		user.Name,
		user.Mobile,
		user.Address,
		user.Pincode,
		user.CreatedAt,
	).Scan(&user.ID)

	if isUniqueViolation(err) {
		return ErrMobileTaken
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("mobile", utils.MaskMobile(user.Mobile)),
		)
		return fmt.Errorf("create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		ur.log.Error("Failed to commit signup transaction", zap.Error(err))
		return fmt.Errorf("commit signup transaction: %w", err)
	}

	return nil
}
