package main

import (
	"context"
	"go-careerbridge/config"
	_ "go-careerbridge/docs"
	v1 "go-careerbridge/internal/delivery/http/v1"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/auth"
	"go-careerbridge/pkg/logger"
	"go-careerbridge/pkg/redis"
	"go-careerbridge/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// cbsandbox serves an in-memory CareerBridge API on CB_SANDBOX_PORT.
//
// @title           CareerBridge Sandbox API
// @version         1.0
// @description     In-memory CareerBridge backend for exercising the client library and cbctl.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting CareerBridge sandbox", "port", cfg.SandboxPort)

	// 3. Redis backs the rate limiter when configured; otherwise it falls
	// back to process memory.
	if cfg.RedisURL != "" {
		if err := redis.Initialize(context.Background(), redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 4. Setup Backend
	backend := sandbox.New()
	if cfg.SandboxSeed {
		if err := backend.Seed(); err != nil {
			logger.Log.Error("Failed to seed sandbox", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Sandbox seeded",
			"admin", sandbox.SeedAdminEmail,
			"employer", sandbox.SeedEmployerEmail,
			"seeker", sandbox.SeedSeekerEmail,
			"password", sandbox.SeedPassword,
		)
	}

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Backend:        backend,
		Issuer:         auth.NewIssuer(cfg.SandboxJWTSecret, 7*24*time.Hour),
		Validate:       validation.New(),
		AllowedOrigins: cfg.SandboxAllowedOrigins,
		RateLimit:      true,
		AccessLog:      true,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.SandboxPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
