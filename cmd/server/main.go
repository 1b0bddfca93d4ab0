package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/database"
	"github.com/edulinkhq/enroll-backend/internal/database/repository"
	"github.com/edulinkhq/enroll-backend/internal/router"
	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/services/auth"
	"github.com/edulinkhq/enroll-backend/internal/services/events"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "github.com/edulinkhq/enroll-backend/docs"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configureLogging()
	utils.InitSentry()

	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	// Seed default roles before anything can sign up
	roleService := services.NewRoleService(roleRepo, userRepo)
	if err := roleService.EnsureDefaultRoles(); err != nil {
		logrus.Fatalf("Failed to seed default roles: %v", err)
	}

	// Lifecycle event publisher; the platform runs without it
	publisher, err := events.NewPublisher()
	if err != nil {
		logrus.Warnf("Failed to initialize event publisher: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	var sink auth.EventPublisher
	if publisher != nil {
		sink = publisher
	}
	authService := auth.NewAuthService(auth.LoadConfig(), userRepo, tokenRepo, roleRepo, sink)

	// Background sweeps: stale refresh tokens and accounts past their
	// scheduled deletion
	tokenCleanup := auth.NewTokenCleanupService(tokenRepo)
	tokenCleanup.Start()
	defer tokenCleanup.Stop()

	accountCleanup := auth.NewAccountCleanupService(userRepo)
	accountCleanup.Start()
	defer accountCleanup.Stop()

	r := router.SetupRouter(db, authService, publisher)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
