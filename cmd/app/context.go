package main

import (
	"fmt"
	"log/slog"

	appcmd "baggage/cmd"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// commandContext loads configuration once and hands out shared resources to
// subcommands.
type commandContext struct {
	envFile *string
	cfg     *appcmd.Config
	logger  *slog.Logger
}

func newCommandContext(envFile *string) *commandContext {
	return &commandContext{envFile: envFile}
}

func (c *commandContext) ensureConfig() (appcmd.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := getConfigs(*c.envFile)
	if err != nil {
		return appcmd.Config{}, err
	}
	c.cfg = &cfg
	c.logger = newLogger(cfg.LogLevel)
	return cfg, nil
}

func (c *commandContext) openDB(cfg appcmd.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// compositionRoot wires the application for commands that need more than a
// database handle.
func (c *commandContext) compositionRoot() (*appcmd.CompositionRoot, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := c.openDB(cfg)
	if err != nil {
		return nil, err
	}
	return appcmd.NewCompositionRoot(cfg, db, c.logger)
}
