package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/boardsync/internal/config/colors"
)

// DataDir returns ~/.boardsync, where the database and logs live by default
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, "."+appDirName)
}

// Default returns the built-in configuration
func Default() *Config {
	dataDir := DataDir()
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Dir:    filepath.Join(dataDir, "logs"),
		},
		Store: StoreConfig{
			Driver:       DriverSQLite,
			Path:         filepath.Join(dataDir, "board.db"),
			SeedDefaults: true,
		},
		Remote: RemoteConfig{
			BaseURL: "http://127.0.0.1:8420",
			Timeout: 10 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     2 * time.Second,
				Multiplier:      2,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 50,
				Burst:             20,
			},
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8420",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Sync: SyncConfig{
			MaxConcurrentWrites: 8,
		},
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: *colors.Default(),
	}
}
