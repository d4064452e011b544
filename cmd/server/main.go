package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordstreak/internal/cache"
	"wordstreak/internal/config"
	"wordstreak/internal/database"
	"wordstreak/internal/handlers"
	"wordstreak/internal/jobs"
	"wordstreak/internal/repository"
	"wordstreak/internal/service"

	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the starter dictionary on first run
	if err := db.SeedStarterWords(); err != nil {
		log.Printf("Warning: Failed to seed starter dictionary: %v", err)
	}

	// Initialize repositories
	wordRepo := repository.NewWordRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	// Optional Redis fast path for the global ranking
	var scoreCache service.ScoreCache
	if cfg.RedisAddr != "" {
		c := cache.New(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Ping(ctx); err != nil {
			log.Printf("Warning: Redis at %s unreachable, ranking cache disabled: %v", cfg.RedisAddr, err)
		} else {
			scoreCache = c
			log.Printf("Leaderboard cache connected (redis: %s)", cfg.RedisAddr)
		}
		cancel()
	}

	// Initialize services
	queue := jobs.NewQueue()
	statsService := service.NewStatsService(statsRepo, puzzleRepo, attemptRepo)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, entryRepo, queue, scoreCache)
	puzzleService := service.NewPuzzleService(wordRepo, puzzleRepo, attemptRepo, statsService, leaderboardService, cfg.WordSampleSize)

	// Create today's puzzle on startup so the first request never races
	// the scheduler.
	if _, err := puzzleService.EnsureDailyPuzzle(); err != nil {
		log.Printf("Warning: Failed to create daily puzzle on startup: %v", err)
	}

	// Schedule daily puzzle creation
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DailyPuzzleCron, func() {
		if _, err := puzzleService.EnsureDailyPuzzle(); err != nil {
			log.Printf("Scheduled daily puzzle creation failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid daily puzzle cron expression %q: %v", cfg.DailyPuzzleCron, err)
	}
	scheduler.Start()

	// Initialize handlers
	puzzleHandler := handlers.NewPuzzleHandler(puzzleService)
	statsHandler := handlers.NewStatsHandler(statsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Puzzle routes
	mux.HandleFunc("GET /api/puzzles/today", handlers.RequireUser(puzzleHandler.Today))
	mux.HandleFunc("POST /api/puzzles/training", handlers.RequireUser(puzzleHandler.CreateTraining))
	mux.HandleFunc("POST /api/puzzles/{puzzleId}/guesses", handlers.RequireUser(puzzleHandler.SubmitGuess))
	mux.HandleFunc("GET /api/puzzles/{puzzleId}/attempts", handlers.RequireUser(puzzleHandler.ListAttempts))

	// Statistics routes
	mux.HandleFunc("GET /api/statistics/{type}", handlers.RequireUser(statsHandler.GetStatistics))

	// Leaderboard routes
	mux.HandleFunc("GET /api/leaderboards", handlers.RequireUser(leaderboardHandler.MyLeaderboards))
	mux.HandleFunc("POST /api/leaderboards", handlers.RequireUser(leaderboardHandler.Create))
	mux.HandleFunc("POST /api/leaderboards/join", handlers.RequireUser(leaderboardHandler.Join))
	mux.HandleFunc("GET /api/leaderboards/global", handlers.RequireUser(leaderboardHandler.Global))
	mux.HandleFunc("POST /api/leaderboards/{id}/leave", handlers.RequireUser(leaderboardHandler.Leave))
	mux.HandleFunc("DELETE /api/leaderboards/{id}", handlers.RequireUser(leaderboardHandler.Delete))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Let in-flight population jobs finish before closing the database.
	queue.Wait()
}
