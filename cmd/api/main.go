package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/triptailor/triptailor/internal/adapters/ai"
	"github.com/triptailor/triptailor/internal/adapters/cache"
	adapterHTTP "github.com/triptailor/triptailor/internal/adapters/handler/http"
	"github.com/triptailor/triptailor/internal/adapters/repository"
	"github.com/triptailor/triptailor/internal/config"
	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/services"
	"github.com/triptailor/triptailor/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, 0)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
		log.Println("Redis connected successfully.")
	}

	userRepo := repository.NewPostgresUserRepository(db)
	tripRepo := repository.NewPostgresTripRepository(db)

	var goalRepo domain.GoalRepository = repository.NewPostgresGoalRepository(db)
	if rdb != nil {
		goalRepo = repository.NewCachedGoalRepository(goalRepo, rdb)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	streakWorker := workers.NewStreakWorker(goalRepo)
	streakWorker.Start(workerCtx)

	planner := ai.NewOpenAIPlanner(cfg.OpenAIKey, cfg.OpenAIModel)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, userRepo)
	goalService := services.NewGoalService(goalRepo, streakWorker)
	progressService := services.NewProgressService(goalRepo)
	tripService := services.NewTripService(tripRepo, planner)
	motivationService := services.NewMotivationService(goalRepo, userRepo, planner)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService, tokenService),
		GoalHandler:       adapterHTTP.NewGoalHandler(goalService),
		ProgressHandler:   adapterHTTP.NewProgressHandler(progressService),
		TripHandler:       adapterHTTP.NewTripHandler(tripService),
		MotivationHandler: adapterHTTP.NewMotivationHandler(motivationService),
		TokenService:      tokenService,
		DB:                db,
		Redis:             rdb,
		StartTime:         startTime,
	})

	// Itinerary generation can hold the connection while the planner works,
	// so the write timeout is generous.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("TripTailor API running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
