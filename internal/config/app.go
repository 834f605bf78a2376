// Package config loads the catalog server configuration: a YAML file with
// defaults for anything it omits, overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	envcfg "magazine-catalog/pkg/config"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the catalog server configuration.
type AppConfig struct {
	HTTP struct {
		Addr              string        `yaml:"addr"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
		ReadTimeout       time.Duration `yaml:"read_timeout"`
		WriteTimeout      time.Duration `yaml:"write_timeout"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
		MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	} `yaml:"http"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json | text
	} `yaml:"log"`

	Seed struct {
		File string `yaml:"file"`
	} `yaml:"seed"`

	Metrics struct {
		// RefreshSchedule is a five-field cron expression for refreshing catalog gauges.
		RefreshSchedule string `yaml:"refresh_schedule"`
		Timezone        string `yaml:"timezone"`
	} `yaml:"metrics"`

	Tracing struct {
		Enabled     bool    `yaml:"enabled"`
		SampleRatio float64 `yaml:"sample_ratio"`
	} `yaml:"tracing"`

	RateLimit struct {
		WritesPerSecond float64       `yaml:"writes_per_second"`
		Burst           int           `yaml:"burst"`
		ClientTTL       time.Duration `yaml:"client_ttl"`
		// TrustedProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For and
		// X-Real-IP headers are believed. Empty means every client is keyed by RemoteAddr.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"rate_limit"`

	Auth struct {
		// SecretEnv names the environment variable holding the JWT signing secret.
		SecretEnv string `yaml:"secret_env"`
	} `yaml:"auth"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	c := &AppConfig{}
	c.HTTP.Addr = ":8080"
	c.HTTP.ReadHeaderTimeout = 5 * time.Second
	c.HTTP.ReadTimeout = 10 * time.Second
	c.HTTP.WriteTimeout = 10 * time.Second
	c.HTTP.IdleTimeout = 60 * time.Second
	c.HTTP.ShutdownTimeout = 10 * time.Second
	c.HTTP.MaxBodyBytes = 1 << 20
	c.Log.Level = "info"
	c.Log.Format = "json"
	c.Metrics.RefreshSchedule = "*/1 * * * *"
	c.Metrics.Timezone = "UTC"
	c.Tracing.SampleRatio = 1.0
	c.RateLimit.WritesPerSecond = 5
	c.RateLimit.Burst = 10
	c.RateLimit.ClientTTL = 10 * time.Minute
	c.Auth.SecretEnv = "JWT_SECRET"
	return c
}

// Load builds the configuration from the YAML file at path (optional),
// applies environment overrides and validates the result.
// The path parameter is expected to come from a trusted source (flag or env).
func Load(path string) (*AppConfig, error) {
	c := Default()
	if path != "" {
		// #nosec G304 -- path is provided by the operator, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *AppConfig) applyEnv() {
	c.HTTP.Addr = envcfg.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.Log.Level = envcfg.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envcfg.GetEnvString("LOG_FORMAT", c.Log.Format)
	c.Seed.File = envcfg.GetEnvString("SEED_FILE", c.Seed.File)
	c.Metrics.RefreshSchedule = envcfg.GetEnvString("METRICS_REFRESH_SCHEDULE", c.Metrics.RefreshSchedule)
	c.Metrics.Timezone = envcfg.GetEnvString("METRICS_TIMEZONE", c.Metrics.Timezone)
	c.Tracing.Enabled = envcfg.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.SampleRatio = envcfg.GetEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)
	c.RateLimit.WritesPerSecond = envcfg.GetEnvFloat("RATE_LIMIT_WRITES_PER_SECOND", c.RateLimit.WritesPerSecond)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES")); v != "" {
		c.RateLimit.TrustedProxies = strings.Split(v, ",")
	}
}

// TrustedProxies returns the parsed rate_limit.trusted_proxies entries.
func (c *AppConfig) TrustedProxies() ([]netip.Prefix, error) {
	return ParseTrustedProxies(c.RateLimit.TrustedProxies)
}

// JWTSecret returns the signing secret from the configured environment variable.
func (c *AppConfig) JWTSecret() string {
	return os.Getenv(c.Auth.SecretEnv)
}

// Validate checks the loaded configuration.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		errs = append(errs, errors.New("http read_header_timeout must be positive"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http shutdown_timeout must be positive"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http max_body_bytes must be positive"))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.Log.Format))
	}
	if err := ValidateCronSchedule(c.Metrics.RefreshSchedule); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTimezone(c.Metrics.Timezone); err != nil {
		errs = append(errs, err)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing sample_ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio))
	}
	if c.RateLimit.WritesPerSecond <= 0 {
		errs = append(errs, errors.New("rate_limit writes_per_second must be positive"))
	}
	if c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit burst must be at least 1"))
	}
	if _, err := c.TrustedProxies(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.SecretEnv == "" {
		errs = append(errs, errors.New("auth secret_env is required"))
	}
	return errors.Join(errs...)
}
