package main

import (
	"fmt"

	"invoicebook/internal/config"
	"invoicebook/internal/database"
	"invoicebook/internal/logger"
	"invoicebook/internal/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what every command needs: configuration, a logger and an
// open, migrated store.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	users *database.UserRepository
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
		Logger: logger.NewGormLogger(log, logger.GormLevel(cfg.LogLevel)),
	}, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	hasher := password.Hasher{Legacy: cfg.LegacyPasswordDigest}
	return &app{
		cfg:   cfg,
		log:   log,
		db:    db,
		users: database.NewUserRepository(db, hasher),
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
