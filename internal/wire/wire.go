// internal/wire/wire.go
package wire

import (
	"time"

	"nutriverse-auth/internal/adaptor"
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/notifier"
	"nutriverse-auth/internal/usecase"
	"nutriverse-auth/pkg/middleware"
	"nutriverse-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Tokens  *utils.TokenManager
}

// Option overrides a dependency that Wiring would otherwise build from config.
type Option func(*wireOptions)

type wireOptions struct {
	gateway notifier.Gateway
	now     func() time.Time
}

// WithGateway replaces the SMS gateway selected by SMS_PROVIDER.
func WithGateway(gateway notifier.Gateway) Option {
	return func(o *wireOptions) {
		o.gateway = gateway
	}
}

// WithClock drives OTP expiry and token timestamps from now.
func WithClock(now func() time.Time) Option {
	return func(o *wireOptions) {
		o.now = now
	}
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, opts ...Option) *App {
	o := wireOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	gateway := o.gateway
	if gateway == nil {
		gateway = notifier.New(config.SMS, config.App.Name, config.OTP.TTL(), logger)
	}

	tokens := utils.NewTokenManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour).
		WithClock(o.now)

	// Initialize services dan handlers
	service := usecase.NewService(repo, config, gateway, tokens, logger, usecase.WithClock(o.now))
	handler := adaptor.NewHandler(service, repo, logger)

	// Setup router
	router := setupRouter(handler, tokens, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Tokens:  tokens,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	tokens *utils.TokenManager,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	// Apply routes
	r.Route("/api/auth", func(r chi.Router) {
		wireAuth(r, handler.Auth)
		wireUser(r, handler.User, tokens, logger)
	})

	// Health check endpoint
	r.Get("/api/health", handler.Health.Check)

	return r
}
