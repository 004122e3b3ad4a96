package repository

import (
	"context"
	"sync"
	"time"

	"nutriverse-auth/internal/data/entity"

	"go.uber.org/zap"
)

// memoryStore keeps users and OTP codes in process. It backs DB_DRIVER=memory
// for local runs and the HTTP tests. One mutex guards both tables so the
// signup transaction is atomic here too.
type memoryStore struct {
	mu         sync.Mutex
	users      []*entity.User
	otps       []*entity.OTP
	nextUserID int64
	nextOTPID  int64
}

// NewMemoryRepository returns a Repository whose state lives and dies with
// the process.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := &memoryStore{}
	log.Info("Using in-memory store; data is lost on restart")

	return &Repository{
		User:  &memoryUserRepository{store: store},
		OTP:   &memoryOTPRepository{store: store},
		Store: store,
	}
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *memoryStore) findUser(match func(*entity.User) bool) *entity.User {
	for _, u := range s.users {
		if match(u) {
			copied := *u
			return &copied
		}
	}
	return nil
}

type memoryUserRepository struct {
	store *memoryStore
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.findUser(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memoryUserRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.findUser(func(u *entity.User) bool { return u.Mobile == mobile }), nil
}

func (r *memoryUserRepository) CreateWithOTP(ctx context.Context, user *entity.User, otpID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var otp *entity.OTP
	for _, o := range r.store.otps {
		if o.ID == otpID {
			otp = o
			break
		}
	}
	if otp == nil || otp.IsUsed {
		return ErrOTPConsumed
	}
	if r.store.findUser(func(u *entity.User) bool { return u.Mobile == user.Mobile }) != nil {
		return ErrMobileTaken
	}

	otp.IsUsed = true
	r.store.nextUserID++
	user.ID = r.store.nextUserID
	stored := *user
	r.store.users = append(r.store.users, &stored)

	return nil
}

type memoryOTPRepository struct {
	store *memoryStore
}

func (r *memoryOTPRepository) Create(ctx context.Context, otp *entity.OTP) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextOTPID++
	otp.ID = r.store.nextOTPID
	stored := *otp
	stored.Payload = append([]byte(nil), otp.Payload...)
	r.store.otps = append(r.store.otps, &stored)

	return nil
}

func (r *memoryOTPRepository) FindLatestValid(ctx context.Context, mobile string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var latest *entity.OTP
	for _, o := range r.store.otps {
		if o.Mobile != mobile || o.Purpose != purpose || !o.ValidAt(now) {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) ||
			(o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}

	copied := *latest
	return &copied, nil
}

func (r *memoryOTPRepository) MarkAsUsed(ctx context.Context, otpID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range r.store.otps {
		if o.ID == otpID {
			if o.IsUsed {
				return false, nil
			}
			o.IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryOTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.otps[:0]
	var removed int64
	for _, o := range r.store.otps {
		if o.ExpiresAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.store.otps = kept

	return removed, nil
}
