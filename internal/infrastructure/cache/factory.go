package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory creates the caches from configuration. When Redis is not
// configured or unreachable it falls back to the in-memory implementations.
type Factory struct {
	redisConfig   config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory caches when
// Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// NewFactory creates a new cache factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:   cfg,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCaches builds the stats cache and vote guard. Both share one Redis
// client when Redis is reachable.
func (f *Factory) CreateCaches() (StatsCache, VoteGuard, error) {
	client, err := f.connect()
	if err == nil {
		f.logger.Info("using Redis caches")
		return NewRedisStatsCache(client), NewRedisVoteGuard(client), nil
	}

	if !f.allowFallback {
		return nil, nil, fmt.Errorf("Redis required but unavailable: %w", err)
	}

	if f.redisConfig.Addr() != "" {
		f.logger.Warn("Redis unavailable, falling back to in-memory caches. "+
			"Cached state will not be shared across instances.",
			zap.Error(err),
		)
	}
	return NewInMemoryStatsCache(), NewInMemoryVoteGuard(), nil
}

func (f *Factory) connect() (*redis.Client, error) {
	addr := f.redisConfig.Addr()
	if addr == "" {
		return nil, fmt.Errorf("redis not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
