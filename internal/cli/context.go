package cli

import (
	"context"
	"errors"

	"github.com/thenoetrevino/boardsync/internal/app"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/logging"
)

type (
	cliKey    struct{}
	configKey struct{}
)

// WithConfig stores the loaded configuration for subcommands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by WithConfig, loading
// it from the default location when none is present
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg, nil
		}
	}
	return config.Load()
}

// WithCLI injects a ready CLI. Commands run against it share one app, which
// the caller is responsible for closing.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	shared := *c
	shared.shared = true
	return context.WithValue(ctx, cliKey{}, &shared)
}

// GetCLIFromContext returns the injected CLI or builds one from the
// configuration in ctx
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, errors.New("command has no context")
	}
	if c, ok := ctx.Value(cliKey{}).(*CLI); ok && c != nil {
		c.ctx = ctx
		return c, nil
	}

	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg, app.WithLogger(logging.FromContext(ctx)))
}

type configPathKey struct{}

// WithConfigPath records an explicit --config path
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey{}, path)
}

// ConfigPath returns the --config path, or the default location
func ConfigPath(ctx context.Context) (string, error) {
	if ctx != nil {
		if p, ok := ctx.Value(configPathKey{}).(string); ok && p != "" {
			return p, nil
		}
	}
	return config.Path()
}
