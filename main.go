// main.go
package main

import (
	"context"
	"log"
	"time"

	"nutriverse-auth/cmd"
	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/wire"
	"nutriverse-auth/pkg/database"
	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

// OTP rows this far past expiry are removed at startup.
const otpRetention = 24 * time.Hour

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.String("sms_provider", config.SMS.Provider),
		zap.Bool("debug", config.App.Debug),
	)

	var repos *repository.Repository
	switch config.Database.Driver {
	case utils.DriverMemory:
		repos = repository.NewMemoryRepository(logger)

	default:
		// Connect to database
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}

		repos = repository.NewRepository(db, logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	purgeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := app.Service.OTP.PurgeExpired(purgeCtx, otpRetention); err != nil {
		logger.Warn("Failed to purge expired OTPs", zap.Error(err))
	}
	cancel()

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
