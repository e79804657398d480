package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ArowuTest/lottogen-backend/api/routes"
	"github.com/ArowuTest/lottogen-backend/internal/config"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"github.com/ArowuTest/lottogen-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lottogen-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottogen-backend/internal/repositories/redisstore"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/ArowuTest/lottogen-backend/pkg/mongodb"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

func main() {
	config.LoadDotEnv()

	// Load configuration
	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect to MongoDB using the pkg helper
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize Repositories
	collectionRepo := mongorepo.NewCollectionRepository(db)
	settingsRepo := mongorepo.NewSystemSettingsRepository(db, cfg.DefaultSettings())
	adminRepo := mongorepo.NewAdminUserRepository(db)

	var progressStore repositories.ProgressStore
	if cfg.Redis.Addr == "" {
		slog.Info("Redis not configured; keeping job progress in memory")
		progressStore = memory.NewProgressStore()
	} else {
		redisClient, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err, "addr", cfg.Redis.Addr)
			os.Exit(1)
		}
		defer redisClient.Close()
		progressStore = redisstore.NewProgressStore(redisClient, time.Duration(cfg.Redis.JobTTL)*time.Second)
	}

	// Initialize Services
	generationService, err := services.NewGenerationService(ctx, collectionRepo, settingsRepo)
	if err != nil {
		slog.Error("Failed to start generation service", "error", err)
		os.Exit(1)
	}
	settingsService := services.NewSystemSettingsService(settingsRepo)
	jobService := services.NewJobService(generationService, progressStore)
	authService := services.NewAuthService(adminRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		slog.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		GenerationService: generationService,
		JobService:        jobService,
		ValidationService: services.NewValidationService(generationService, settingsService),
		SettingsService:   settingsService,
		AuthService:       authService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in a goroutine so that it doesn't block
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	// Running batches roll back on cancellation.
	jobService.Shutdown()

	slog.Info("Server exiting")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
