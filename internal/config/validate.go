package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Store.validate(),
		c.remoteValidate(),
		c.Server.validate(),
		c.Sync.validate(),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	switch s.Driver {
	case DriverSQLite, DriverHTTP:
		return nil
	default:
		return fmt.Errorf("store.driver must be one of: sqlite, http; got %q", s.Driver)
	}
}

// remoteValidate only checks the client settings when the http driver is in use
func (c *Config) remoteValidate() error {
	if c.Store.Driver != DriverHTTP {
		return nil
	}
	r := c.Remote
	var errs []error

	if r.BaseURL == "" {
		errs = append(errs, errors.New("remote.base_url must not be empty"))
	}
	if r.Timeout <= 0 {
		errs = append(errs, errors.New("remote.timeout must be positive"))
	}
	if r.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("remote.retry.max_attempts must be >= 1, got %d", r.Retry.MaxAttempts))
	}
	if r.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("remote.retry.multiplier must be positive, got %f", r.Retry.Multiplier))
	}
	if r.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("remote.circuit_breaker.max_failures must be >= 1, got %d",
			r.CircuitBreaker.MaxFailures))
	}
	if r.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("remote.rate_limit.requests_per_second must not be negative"))
	}

	return errors.Join(errs...)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (s *SyncConfig) validate() error {
	if s.MaxConcurrentWrites < 1 {
		return fmt.Errorf("sync.max_concurrent_writes must be >= 1, got %d", s.MaxConcurrentWrites)
	}
	return nil
}
