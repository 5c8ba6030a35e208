package config

import (
	"context"
	"fmt"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedisClient connects to the server named by url and checks it answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewLocker picks the id allocation lock. Without REDIS_URL ids are only
// serialized inside this process. The returned close func is never nil.
func NewLocker(ctx context.Context, cfg *Config) (services.Locker, func() error, error) {
	if cfg.RedisURL == "" {
		return services.NewLocalLocker(), func() error { return nil }, nil
	}
	client, err := NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("using redis lock for id allocation")
	return services.NewRedisLocker(client), client.Close, nil
}
