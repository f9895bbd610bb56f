package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/go-redis/redis/v8"

	httpadapter "github.com/driveline/driveline/internal/adapter/http"
	"github.com/driveline/driveline/internal/adapter/persistence"
	"github.com/driveline/driveline/internal/config"
	"github.com/driveline/driveline/internal/service/logger"
	"github.com/driveline/driveline/internal/service/password"
	"github.com/driveline/driveline/internal/service/ratelimit"
	"github.com/driveline/driveline/internal/service/token"
	"github.com/driveline/driveline/internal/service/vin"
	"github.com/driveline/driveline/internal/usecase"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "driveline",
	})
	appLogger.Info(ctx, "application starting", map[string]interface{}{
		"env": cfg.Server.Environment,
	})

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	appLogger.Info(ctx, "database connection established", map[string]interface{}{
		"host": cfg.Database.Host,
		"name": cfg.Database.DBName,
	})

	// Optional Redis client, shared by the rate limiter and the VIN cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			appLogger.Error(ctx, "invalid redis url, continuing without redis", err, nil)
		} else {
			opts.PoolSize = cfg.Redis.PoolSize
			redisClient = redis.NewClient(opts)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				appLogger.Error(ctx, "redis unreachable, continuing without redis", err, nil)
				redisClient = nil
			}
		}
	}

	limiter, err := ratelimit.New(cfg.GetRedisURL(), cfg.Redis.Enabled, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	// Repositories
	carRepo := persistence.NewPostgresCarRepository(db)
	logRepo := persistence.NewPostgresLogRepository(db)
	blogRepo := persistence.NewPostgresBlogRepository(db)
	adminRepo := persistence.NewPostgresAdminRepository(db)

	// Services
	tokenService, err := token.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptService(cfg.Security.BcryptCost)
	vinDecoder := vin.New(vin.Config{
		BaseURL:  cfg.Vin.BaseURL,
		Timeout:  cfg.Vin.Timeout,
		Retry:    vin.RetryPolicy{Attempts: cfg.Vin.RetryAttempts, Backoff: cfg.Vin.RetryBackoff},
		CacheTTL: cfg.Vin.CacheTTL,
	}, redisClient, appLogger)

	// Use cases
	inventoryUseCase := usecase.NewInventoryUseCase(carRepo, logRepo, appLogger)
	profitabilityUseCase := usecase.NewProfitabilityUseCase(carRepo, logRepo)
	blogUseCase := usecase.NewBlogUseCase(blogRepo)
	authUseCase := usecase.NewAuthUseCase(
		adminRepo,
		passwordService,
		tokenService,
		limiter,
		appLogger,
		cfg.Security.LoginAttemptLimit,
		cfg.Security.LoginWindow,
		cfg.Security.LoginBlockFor,
	)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		appLogger,
		inventoryUseCase,
		profitabilityUseCase,
		blogUseCase,
		authUseCase,
		vinDecoder,
		tokenService,
	)

	go func() {
		if err := server.Start(); err != nil {
			appLogger.Error(ctx, "server stopped", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(ctx, "server forced to shutdown", err, nil)
	}
	appLogger.Info(ctx, "server exited", nil)
}
