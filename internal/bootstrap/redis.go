package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/logger"
)

const redisPingTimeout = 3 * time.Second

// SetupEventPublisher creates an optional event publisher if Redis is
// enabled. Returns nil if Redis is disabled or unavailable; a nil publisher
// is a safe no-op everywhere.
func SetupEventPublisher(cfg *config.Config, log logger.Logger) *events.Publisher {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, events disabled", logger.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("Event publisher initialized", logger.String("redis_address", cfg.Redis.Address))
	return events.NewPublisher(client, log)
}
