package app

import (
	"log/slog"

	"github.com/thenoetrevino/boardsync/internal/remote"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger *slog.Logger
	store  remote.FullStore
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithStore replaces the configured durable store, e.g. with a fake in tests
func WithStore(store remote.FullStore) Option {
	return func(cfg *appConfig) {
		cfg.store = store
	}
}
