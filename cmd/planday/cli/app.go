package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/planday/internal/agenda"
	"github.com/sandeepkv93/planday/internal/config"
	"github.com/sandeepkv93/planday/internal/logging"
	"github.com/sandeepkv93/planday/internal/storage"
	"go.uber.org/zap"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	store *storage.Gateway
	now   func() time.Time
}

// open loads config, starts logging and opens a migrated store.
func open(ctx context.Context, flags *rootFlags) (*app, error) {
	return openStore(ctx, flags, true)
}

func openStore(ctx context.Context, flags *rootFlags, migrate bool) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	if migrate {
		if err := storage.MigrateUp(ctx, store); err != nil {
			_ = store.Close()
			_ = log.Sync()
			return nil, fmt.Errorf("prepare schema: %w", err)
		}
	}
	return &app{cfg: cfg, log: log, store: store, now: time.Now}, nil
}

// loadConfig layers the config file, PLANDAY_* variables and flags, in that
// order.
func loadConfig(flags *rootFlags) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		resolved, err := config.ResolvePath()
		if err != nil {
			return config.Config{}, err
		}
		path = resolved
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

func (a *app) service() *agenda.Service {
	return agenda.NewService(a.store, nil, a.log)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store", zap.Error(err))
	}
	_ = a.log.Sync()
}
