// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/application/container"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/security"
	"github.com/parafia-jawornik/parafia-go/internal/presentation/http/server"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// DefaultAdminPassword seeds the admin account on a fresh database. The
// first real login through the API replaces it when no hash exists.
const DefaultAdminPassword = "admin123"

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Parish backend starting")

	if err := ensureJWTSecret(logger); err != nil {
		return fmt.Errorf("failed to provision JWT secret: %w", err)
	}

	// Step 2: Database, schema and seed content
	db, err := database.NewConnectionWithLogger(config.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := db.SeedIfEmpty(DefaultAdminPassword); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Step 3: Dependency injection container
	perfTracker := performance.NewTracker()
	appContainer, err := container.New(db, logger, perfTracker)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to build container: %w", err)
	}

	// Step 4: HTTP server
	httpServer, err := server.New(config.Port, appContainer)
	if err != nil {
		appContainer.Close()
		return fmt.Errorf("failed to build HTTP server: %w", err)
	}

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown")

	shutdownStart := time.Now()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	}

	if err := appContainer.Close(); err != nil {
		logger.Shutdown().Error("Error closing container", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// ensureJWTSecret generates a random secret when none is configured, so
// admin tokens are never signed with an empty key. A generated secret is
// process-local: admin sessions will not survive a restart until JWT_SECRET
// is set explicitly.
func ensureJWTSecret(logger *logging.ChanneledLogger) error {
	if config.JWTSecret != "" {
		return nil
	}
	secret, err := security.GenerateSecureKey(64)
	if err != nil {
		return err
	}
	config.JWTSecret = secret
	logger.Auth().Warn("JWT_SECRET not configured, generated an ephemeral secret for this process")
	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
