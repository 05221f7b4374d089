package database

import (
	"fmt"
	"time"

	"invoicebook/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Options struct {
	Driver      string // sqlite or postgres
	DSN         string
	MaxAttempts int
	RetryDelay  time.Duration
	Logger      gormlogger.Interface
}

// Open connects to the store, retrying while it comes up, and migrates
// the schema.
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 10
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}

	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Logger != nil {
		gormCfg.Logger = opts.Logger
	}

	var db *gorm.DB
	for i := 1; i <= opts.MaxAttempts; i++ {
		log.Info("connecting to database",
			zap.String("driver", opts.Driver),
			zap.Int("attempt", i),
			zap.Int("max_attempts", opts.MaxAttempts))

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.Warn("failed to connect to database", zap.Error(err))
		if i < opts.MaxAttempts {
			time.Sleep(opts.RetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", opts.MaxAttempts, err)
	}

	if opts.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer; also keeps ":memory:" databases on a single connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("connected to database")
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Invoice{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
