package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/bloodconnect/internal/bootstrap"
	"anoa.com/bloodconnect/internal/config"
	"anoa.com/bloodconnect/internal/server"
	"anoa.com/bloodconnect/pkg/database"
	"anoa.com/bloodconnect/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "bloodconnect")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()
	zap.ReplaceGlobals(zapLog)

	db, err := database.Connect(database.Options{
		DSN:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Debug:    !cfg.IsProduction() && cfg.LogLevel == "debug",
	}, zapLog)
	if err != nil {
		zapLog.Fatal("database unavailable", zap.Error(err))
	}

	if err := bootstrap.Migrate(db); err != nil {
		zapLog.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		zapLog.Fatal("failed to seed roles", zap.Error(err))
	}
	if err := bootstrap.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, zapLog); err != nil {
		zapLog.Fatal("failed to seed admin account", zap.Error(err))
	}

	redisClient := connectRedis(cfg.RedisURL, zapLog)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	srv, err := server.NewServer(cfg, db, redisClient, zapLog)
	if err != nil {
		zapLog.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		if err := srv.Run(":" + cfg.Port); err != nil {
			zapLog.Fatal("server exited with error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; the server
// then runs single-instance.
func connectRedis(url string, log *zap.Logger) *redis.Client {
	if url == "" {
		log.Warn("REDIS_URL not set, using in-process notifications without rate limiting")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, continuing without redis", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, continuing without redis", zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", zap.String("addr", opts.Addr))
	return client
}
