package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Warn("recipe cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	srv := server.New(cfg, db, redisClient, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
