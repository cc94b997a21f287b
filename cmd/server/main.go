package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"wordquest/internal/core"
	httpProtocol "wordquest/internal/protocols/http"
	wsProtocol "wordquest/internal/protocols/websocket"
	"wordquest/internal/repository"
	"wordquest/pkg/config"
	"wordquest/pkg/database"
	"wordquest/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("./configs/development.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	logger.Init(loggerCfg)

	logger.Info("Starting WordQuest server...")

	dbCfg := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	}

	// Apply schema migrations over database/sql before opening the pool
	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancelMigrate()
	db.Close()

	pool, err := database.NewPGXPool(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger.Info("Connected to PostgreSQL database")

	// Redis leaderboard cache (optional)
	var leaderboardRepo repository.LeaderboardRepository
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warnf("Redis unavailable, leaderboard cache disabled: %v", err)
		} else {
			leaderboardRepo = repository.NewLeaderboardRepository(rdb)
			logger.Info("Connected to Redis leaderboard cache")
		}
		cancelPing()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)

	logger.Info("Initialized all repositories")

	// Real-time event feed
	wsHub := wsProtocol.NewHub()

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	bookSvc := core.NewBookService(bookRepo)
	progressSvc := core.NewProgressService(bookRepo, progressRepo, achievementRepo, leaderboardRepo, wsHub)
	leaderboardSvc := core.NewLeaderboardService(userRepo, leaderboardRepo)

	logger.Info("Initialized all core services")

	wsHandler := wsProtocol.NewHandler(wsHub, authSvc)

	httpServer := httpProtocol.NewServer(
		cfg,
		authSvc,
		bookSvc,
		progressSvc,
		leaderboardSvc,
		wsHandler,
	)

	// Start HTTP server
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", httpAddr))
		if err := httpServer.Start(httpAddr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Server started successfully")
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info(fmt.Sprintf("Received signal: %v", sig))

	logger.Info("Shutting down...")
	wsHub.Stop()
	logger.Info("Shutdown complete")
}
