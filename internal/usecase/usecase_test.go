package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/dto/request"
	"nutriverse-auth/internal/notifier"
	"nutriverse-auth/internal/usecase"
	"nutriverse-auth/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const testMobile = "+919876543210"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingGateway struct {
	calls int
}

func (g *failingGateway) Send(ctx context.Context, mobile, code, purpose string) notifier.Result {
	g.calls++
	return notifier.Result{Delivered: false, Channel: "twilio", Detail: "Twilio SMS failed with status 500"}
}

type fixture struct {
	service *usecase.Service
	repo    *repository.Repository
	config  *utils.Config
	tokens  *utils.TokenManager
	clock   *testClock
	log     *zap.Logger
}

func newFixture(t *testing.T, gateway notifier.Gateway) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	clock := newTestClock()

	if gateway == nil {
		gateway = notifier.NewMockGateway(log)
	}

	config := &utils.Config{
		App: utils.AppConfig{Name: "NutriVerse"},
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
		OTP: utils.OTPConfig{TTLMinutes: 5, CountryCode: "91"},
	}

	repo := repository.NewMemoryRepository(log)
	tokens := utils.NewTokenManager(config.JWT.Secret, 168*time.Hour).WithClock(clock.Now)

	return &fixture{
		service: usecase.NewService(repo, config, gateway, tokens, log, usecase.WithClock(clock.Now)),
		repo:    repo,
		config:  config,
		tokens:  tokens,
		clock:   clock,
		log:     log,
	}
}

// withGateway builds a second service over the same store and clock.
func (f *fixture) withGateway(gateway notifier.Gateway) *usecase.Service {
	return usecase.NewService(f.repo, f.config, gateway, f.tokens, f.log, usecase.WithClock(f.clock.Now))
}

func signupRequest() *request.SignupOTPRequest {
	return &request.SignupOTPRequest{
		Name:    "Asha Rao",
		Mobile:  "98765 43210",
		Address: "12 MG Road, Bengaluru",
		Pincode: "560001",
	}
}

// assertKind checks both the error kind and the client-facing message.
func assertKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)

	var svcErr *usecase.Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, message, svcErr.Message)
}

// register runs the signup flow to completion.
func (f *fixture) register(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	sent, err := f.service.Auth.RequestSignupOTP(ctx, signupRequest())
	require.NoError(t, err)

	_, err = f.service.Auth.VerifySignupOTP(ctx, &request.VerifyOTPRequest{Mobile: testMobile, OTP: sent.DevOTP})
	require.NoError(t, err)
}
