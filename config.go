package ttynamed

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the configuration for device enumeration
type Config struct {
	SysRoot      string
	QueryTimeout time.Duration
	Querier      PropertyQuerier // nil selects udevadm
	Logger       zerolog.Logger
}

// Option is a functional option for configuring an Enumerator
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		SysRoot:      "/sys",
		QueryTimeout: DefaultQueryTimeout,
		Logger:       zerolog.Nop(),
	}
}

// WithSysRoot points discovery at a different sysfs mount
func WithSysRoot(root string) Option {
	return func(c *Config) error {
		if root == "" {
			return ErrInvalidConfig
		}
		c.SysRoot = root
		return nil
	}
}

// WithQueryTimeout sets the per-device udevadm timeout
func WithQueryTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.QueryTimeout = timeout
		return nil
	}
}

// WithQuerier replaces udevadm as the source of device properties
func WithQuerier(q PropertyQuerier) Option {
	return func(c *Config) error {
		if q == nil {
			return ErrInvalidConfig
		}
		c.Querier = q
		return nil
	}
}

// WithLogger sets the logger used for per-device diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}
