package repository

import (
	"context"
	"errors"

	"nutriverse-auth/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrOTPConsumed is returned when a code was already marked used by
	// another request between lookup and consumption.
	ErrOTPConsumed = errors.New("otp already consumed")
	// ErrMobileTaken is returned when a user with the same mobile exists.
	ErrMobileTaken = errors.New("mobile already registered")
)

const pgUniqueViolation = "23505"

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User  UserRepository
	OTP   OTPRepository
	Store Pinger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:  NewUserRepository(db, log),
		OTP:   NewOTPRepository(db, log),
		Store: db,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
