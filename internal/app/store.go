package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
	"github.com/MrSnakeDoc/nitron/internal/redis"
	"github.com/MrSnakeDoc/nitron/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/nitron/internal/store/redis"
	"github.com/MrSnakeDoc/nitron/internal/store/sqlite"
)

// OpenStore opens the record store selected by cfg.Store. Redis connections
// are retried until cfg.RedisConnectTimeout.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.RecordStore, error) {
	switch cfg.Store {
	case config.StoreRedis:
		log.Info("connecting to redis store", logger.String("addr", cfg.RedisAddr))
		client, err := redis.New(ctx, redis.ConnectOptions{
			ClientName:     "nitron",
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, redisstore.Options{Location: cfg.Location}), nil

	case config.StoreSQLite:
		log.Info("opening sqlite store", logger.String("path", cfg.SQLitePath))
		store, err := sqlite.Open(cfg.SQLitePath, sqlite.Options{Location: cfg.Location})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, records are lost on exit")
		return memory.New(cfg.Location, nil), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
