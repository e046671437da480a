package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// loadSettings loads the config file and applies the global flags on top.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagSize != 0 {
		cfg.Board.Size = flagSize
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. Without a log file it writes
// to fallback. The returned close function releases the file, if any.
func newLogger(cfg config.LogConfig, fallback io.Writer) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	w, closeFn := fallback, func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
	return logger, closeFn, nil
}

// setup loads settings, builds the logger and hands both to the game package.
func setup(fallback io.Writer) (config.Config, *log.Logger, func(), error) {
	cfg, err := loadSettings()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger, closeFn, err := newLogger(cfg.Log, fallback)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	t2048.Configure(cfg)
	t2048.SetLogger(logger)
	logger.Debug("settings loaded",
		"size", cfg.Board.Size,
		"four_probability", cfg.Spawn.FourProbability,
		"difficulty", cfg.Difficulty.Enabled,
	)
	return cfg, logger, closeFn, nil
}
