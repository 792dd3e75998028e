package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rise66app/rise66-api/internal/adapters/ai"
	"github.com/rise66app/rise66-api/internal/adapters/cache"
	adapterHTTP "github.com/rise66app/rise66-api/internal/adapters/handler/http"
	"github.com/rise66app/rise66-api/internal/adapters/repository"
	"github.com/rise66app/rise66-api/internal/config"
	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
	"github.com/rise66app/rise66-api/internal/core/workers"
	"github.com/rise66app/rise66-api/internal/jobs"
)

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.AppEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.Info("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.DatabaseDSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMinConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("Database connected")

	// Redis is optional: without it the API runs uncached and unthrottled.
	rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache and rate limiting")
		rdb = nil
	}

	userRepo := repository.NewPostgresUserRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	streakRepo := repository.NewPostgresStreakRepository(db)
	journalRepo := repository.NewPostgresJournalRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)
	tx := repository.NewSQLTransactor(db)

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
	}

	worker := workers.NewStreakWorker(habitRepo, progressRepo, completionRepo)

	llama := ai.NewLlamaClient(ai.Config{
		TogetherAPIKey: cfg.TogetherAPIKey,
		HFAPIKey:       cfg.HuggingFaceAPIKey,
	})

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration, userRepo)
	authService := services.NewAuthService(userRepo)
	habitService := services.NewHabitService(habitRepo, progressRepo)
	completionService := services.NewCompletionService(completionRepo, streakRepo, habitRepo, tx, worker)
	journalService := services.NewJournalService(journalRepo)
	progressService := services.NewProgressService(progressRepo, streakRepo, completionRepo, habitRepo)
	affirmationService := services.NewAffirmationService(llama)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService, completionService),
		JournalHandler:  adapterHTTP.NewJournalHandler(journalService),
		ProgressHandler: adapterHTTP.NewProgressHandler(progressService),
		AIHandler:       adapterHTTP.NewAIHandler(affirmationService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           rdb,
		StartTime:       startTime,

		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)

	scheduler := jobs.NewScheduler(progressRepo, worker)
	if err := scheduler.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start scheduler")
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Rise 66 API running on http://localhost:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Stop signal received. Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Forced shutdown")
	}

	log.Info("Server stopped gracefully")
}
