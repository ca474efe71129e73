// Package config loads boardsync settings. Values are layered: built-in
// defaults, then the YAML config file, then an optional theme file, then
// BOARDSYNC_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/boardsync/internal/config/colors"
)

const (
	envPrefix    = "BOARDSYNC_"
	themeFileEnv = "BOARDSYNC_THEME_FILE"
	appDirName   = "boardsync"
)

// Config represents the application configuration
type Config struct {
	Log         LogConfig          `yaml:"log" koanf:"log"`
	Store       StoreConfig        `yaml:"store" koanf:"store"`
	Remote      RemoteConfig       `yaml:"remote" koanf:"remote"`
	Server      ServerConfig       `yaml:"server" koanf:"server"`
	Sync        SyncConfig         `yaml:"sync" koanf:"sync"`
	KeyMappings KeyMappings        `yaml:"key_mappings" koanf:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme" koanf:"theme"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	Dir    string `yaml:"dir" koanf:"dir"`
}

// Store drivers
const (
	DriverSQLite = "sqlite"
	DriverHTTP   = "http"
)

// StoreConfig selects the durable store behind the board.
type StoreConfig struct {
	Driver       string `yaml:"driver" koanf:"driver"`
	Path         string `yaml:"path" koanf:"path"`
	SeedDefaults bool   `yaml:"seed_defaults" koanf:"seed_defaults"`
}

// RemoteConfig holds settings for the HTTP store client.
type RemoteConfig struct {
	BaseURL        string               `yaml:"base_url" koanf:"base_url"`
	Token          string               `yaml:"token" koanf:"token"`
	Timeout        time.Duration        `yaml:"timeout" koanf:"timeout"`
	Retry          RetryConfig          `yaml:"retry" koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit" koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts" koanf:"max_attempts"`
	InitialInterval time.Duration `yaml:"initial_interval" koanf:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval" koanf:"max_interval"`
	Multiplier      float64       `yaml:"multiplier" koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `yaml:"max_failures" koanf:"max_failures"`
	Timeout       time.Duration `yaml:"timeout" koanf:"timeout"`
	HalfOpenLimit int           `yaml:"half_open_limit" koanf:"half_open_limit"`
}

// RateLimitConfig bounds outbound request rate. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" koanf:"requests_per_second"`
	Burst             int     `yaml:"burst" koanf:"burst"`
}

// ServerConfig holds settings for the REST store server.
type ServerConfig struct {
	Addr         string        `yaml:"addr" koanf:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
}

// SyncConfig tunes the sync coordinator.
type SyncConfig struct {
	MaxConcurrentWrites int `yaml:"max_concurrent_writes" koanf:"max_concurrent_writes"`
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	path string
}

// WithPath loads the config file at path instead of the XDG location
func WithPath(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// Load reads the configuration. A missing config file is not an error;
// defaults apply.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.path == "" {
		if p, err := getConfigPath(); err == nil {
			o.path = p
		}
	}

	k := koanf.New(".")

	// Layer 1: defaults, so every key is known to the env lookup below.
	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	if err := k.Load(rawBytes(defaults), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Layer 2: config file.
	if o.path != "" {
		if _, err := os.Stat(o.path); err == nil {
			if err := k.Load(file.Provider(o.path), kyaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config %s: %w", o.path, err)
			}
		}
	}

	// Layer 3: theme file, which holds a top-level "theme" key.
	if themeFile := os.Getenv(themeFileEnv); themeFile != "" {
		if _, err := os.Stat(themeFile); err == nil {
			if err := k.Load(file.Provider(themeFile), kyaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading theme %s: %w", themeFile, err)
			}
		}
	}

	// Layer 4: environment. BOARDSYNC_REMOTE_BASE_URL -> remote.base_url
	envLookup := buildEnvLookup(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}
			// Unknown keys such as THEME_FILE are dropped.
			return "", nil
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns where Load looks for the config file
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appDirName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appDirName, "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	d := Default()
	if c.Log.Dir == "" {
		c.Log.Dir = d.Log.Dir
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
	if c.Sync.MaxConcurrentWrites == 0 {
		c.Sync.MaxConcurrentWrites = d.Sync.MaxConcurrentWrites
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// buildEnvLookup maps env-style keys ("remote_retry_max_attempts") to koanf
// keys ("remote.retry.max_attempts") so underscores inside field names are
// not mistaken for nesting.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}

// rawBytes is a koanf provider over an in-memory document
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) {
	return r, nil
}

func (r rawBytes) Read() (map[string]any, error) {
	return nil, fmt.Errorf("rawBytes provider does not support Read")
}
