package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"workorders/internal/adapters/out/memory"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/postgres/migrations"
	"workorders/internal/adapters/out/redisstore"
	"workorders/internal/core/ports"

	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Storage is the backend the composition root builds on.
type Storage struct {
	UoWFactory  ports.UnitOfWorkFactory
	Idempotency ports.IdempotencyStore

	closers []func() error
}

// Close releases the connections opened by OpenStorage.
func (s Storage) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenStorage connects the configured store and idempotency backend. The
// postgres driver applies pending migrations before returning.
func OpenStorage(ctx context.Context, config Config, logger *slog.Logger) (Storage, error) {
	var storage Storage

	switch config.StorageDriver {
	case StoragePostgres:
		db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return Storage{}, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Storage{}, fmt.Errorf("get sql.DB: %w", err)
		}
		storage.closers = append(storage.closers, sqlDB.Close)

		if err := migrations.Up(ctx, db); err != nil {
			_ = storage.Close()
			return Storage{}, err
		}
		storage.UoWFactory = postgres.NewGormUnitOfWorkFactory(db)
		logger.Info("storage ready", "driver", StoragePostgres, "host", config.DBHost, "db", config.DBName)
	default:
		storage.UoWFactory = memory.NewStore()
		logger.Info("storage ready", "driver", StorageMemory)
	}

	if config.RedisAddr == "" {
		storage.Idempotency = memory.NewIdempotencyStore()
		return storage, nil
	}

	client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = storage.Close()
		return Storage{}, fmt.Errorf("connect redis: %w", err)
	}
	storage.closers = append(storage.closers, client.Close)
	storage.Idempotency = redisstore.NewIdempotencyStore(client)
	logger.Info("idempotency store ready", "redis", config.RedisAddr)

	return storage, nil
}
