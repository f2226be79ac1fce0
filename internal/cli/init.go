// Package cli provides the startup steps shared by every expenses command.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"expenses/internal/config"
	applog "expenses/internal/log"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
)

// SetupLogger builds the application logger writing to w at the configured
// level and installs it as the slog default.
func SetupLogger(cfg *config.Config, w io.Writer) *applog.Logger {
	lc := applog.DefaultConfig()
	lc.Output = w
	if lvl, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = lvl
	}
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// OpenLogFile opens (appending) the log file used while the terminal UI owns
// the screen.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitStore opens the store selected by cfg.Backend.
func InitStore(logger *applog.Logger, cfg *config.Config) (storage.Store, error) {
	logger = logger.WithComponent(applog.ComponentStorage)
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Info("Using in-memory store", applog.FieldBackend, cfg.Backend)
		return memory.New(), nil
	case config.BackendSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository",
				applog.FieldError, err, applog.FieldPath, cfg.SQLiteDBPath)
			return nil, err
		}
		logger.Info("Using SQLite store", applog.FieldBackend, cfg.Backend, applog.FieldPath, cfg.SQLiteDBPath)
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
