package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/viklund/stund/internal/config"
	"github.com/viklund/stund/internal/storage"
	"github.com/viklund/stund/internal/timelog"
)

// env is the assembled runtime for a single command invocation.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.File
	svc    *timelog.Service
	now    time.Time
	loc    *time.Location
}

// environment loads the configuration and wires up logging, storage and the
// timelog service. The clock is read once so every step of a command sees
// the same instant.
func (o *options) environment() (*env, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded",
		slog.String("database", cfg.Database),
		slog.String("index", cfg.Index))

	store, err := storage.NewFile(cfg.Database)
	if err != nil {
		return nil, err
	}

	now := o.now()
	return &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		svc:    timelog.New(store, timelog.WithLogger(logger)),
		now:    now,
		loc:    now.Location(),
	}, nil
}
