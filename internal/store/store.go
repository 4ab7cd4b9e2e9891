// Package store opens and manages the GORM database connection backing the
// user and task stores.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skillsenselab/taskhive/internal/logger"
)

// DB wraps a GORM database handle.
type DB struct {
	Gorm *gorm.DB
	log  *logger.Logger
}

// Open connects to PostgreSQL with retry and configures the connection pool.
// Unique-violation errors are translated by GORM (TranslateError) so stores
// can match gorm.ErrDuplicatedKey.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return open(ctx, postgres.Open(cfg.DSN), cfg, log)
}

// OpenWithDialector connects using an explicit dialector. Tests use this with
// an in-memory SQLite dialector.
func OpenWithDialector(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	return open(ctx, dialector, cfg, log)
}

func open(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*DB, error) {
	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)

	gormCfg := &gorm.Config{
		Logger:         newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("store: connection canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
				if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
					sqlDB.SetConnMaxLifetime(lifetime)
				}

				log.Info("database connection established", logger.Fields("attempt", attempt))
				return &DB{Gorm: db, log: log.WithComponent("store")}, nil
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("database connection attempt failed, retrying", logger.Fields(
				"attempt", attempt, "error", err.Error(), "backoff", backoff.String(),
			))
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("store: connection canceled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("store: failed to connect after %d attempts: %w", cfg.MaxRetries, err)
}

// AutoMigrate creates or updates the schema for the given models.
func (d *DB) AutoMigrate(models ...interface{}) error {
	for _, model := range models {
		if err := d.Gorm.AutoMigrate(model); err != nil {
			return fmt.Errorf("store: migrate %T: %w", model, err)
		}
	}
	d.log.Info("auto-migration completed", logger.Fields("models", len(models)))
	return nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return err
	}
	d.log.Info("closing database connection")
	return sqlDB.Close()
}

// PingContext verifies the database connection is alive.
func (d *DB) PingContext(ctx context.Context) error {
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
