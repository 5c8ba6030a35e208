package config

import (
	"context"
	"fmt"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens PostgreSQL through gorm. Duplicate key violations
// come back as gorm.ErrDuplicatedKey so the store can report them.
func ConnectDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// OpenStore builds the configured store. Postgres tables are migrated when
// migrate is set.
func OpenStore(ctx context.Context, cfg *Config, migrate bool) (store.Store, error) {
	if cfg.Store == StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	db, err := ConnectDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	st := store.NewGormStore(db)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if migrate {
		if err := st.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Info().Msg("database migrated")
	}
	return st, nil
}
