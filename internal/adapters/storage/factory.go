package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weathernow.app/internal/config"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// NewKeyValueStore creates the configured preference storage backend
func NewKeyValueStore(cfg config.StorageConfig, logger ports.Logger) (ports.KeyValueStore, error) {
	logger.Info("Initializing preference storage", ports.F("type", cfg.Type.String()))

	switch cfg.Type {
	case config.StorageTypeMemory:
		return NewMemoryStore(), nil
	case config.StorageTypeRedis:
		return NewRedisStore(&cfg.Redis)
	case config.StorageTypeSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, errors.NewConfigurationError("open sqlite database", err)
		}
		return NewGormStore(db)
	case config.StorageTypePostgres:
		db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
		if err != nil {
			return nil, errors.NewConfigurationError("connect to postgres database", err)
		}
		return NewGormStore(db)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported storage type %q", cfg.Type.String()), nil)
	}
}
