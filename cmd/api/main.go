package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/xhrissun/rhrmpsb-system-sub000/docs" // This is for Swagger
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/auth"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/config"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/database"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/handlers"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/logger"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/middleware"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// @title RHRMPSB Rating API
// @version 1.0
// @description Competency rating, scoring and audit API for the personnel selection board

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
		"rounding_mode", cfg.Scoring.RoundingMode,
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.New(startupCtx, &cfg.Database)
	if err != nil {
		cancelStartup()
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	migrator := database.NewMigrationExecutor(db.DB, cfg.Database.MigrationsDir)
	applied, err := migrator.Up(startupCtx)
	cancelStartup()
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed", "applied", len(applied))

	mode, err := scoring.ParseRoundingMode(cfg.Scoring.RoundingMode)
	if err != nil {
		slog.Error("Invalid rounding mode", "error", err)
		os.Exit(1)
	}

	ratingRepo := repository.NewRatingRepository(db.DB)
	ratingLogRepo := repository.NewRatingLogRepository(db.DB)
	vacancyRepo := repository.NewVacancyRepository(db.DB)
	competencyRepo := repository.NewCompetencyRepository(db.DB)
	candidateRepo := repository.NewCandidateRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	txRunner := repository.NewTxRunner(db.DB)

	ratingService := service.NewRatingService(ratingRepo, txRunner, candidateRepo, competencyRepo, vacancyRepo, userRepo)
	scoringService := service.NewScoringService(ratingRepo, vacancyRepo, competencyRepo, candidateRepo, mode, cfg.Scoring.CacheTTL)
	auditService := service.NewRatingAuditService(ratingLogRepo)

	authService := auth.NewService(&cfg.JWT)
	authMw := middleware.NewAuthMiddleware(authService)
	rbacMw := middleware.NewRBACMiddleware(userRepo)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()

	handlers.Routes{
		Auth:    authMw,
		RBAC:    rbacMw,
		Ratings: handlers.NewRatingHandler(ratingService),
		Scores:  handlers.NewScoreHandler(scoringService),
		Audit:   handlers.NewAuditHandler(auditService),
	}.Register(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","database":"error"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`))
	})

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	handler := middleware.Chain(mux,
		middleware.LoggingMiddleware,
		middleware.SecurityHeaders,
		corsMw.Handler,
		rateLimiter.Limit,
	)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
