package database

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/pageza/recipes/backend/config"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a new Redis client and verifies the connection
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Use Redis URL if provided (for production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse Redis URL")
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	logger.Info("successfully connected to redis", "addr", opts.Addr)
	return client, nil
}
