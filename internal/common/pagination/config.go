// Package pagination provides offset pagination for the catalog list endpoints.
package pagination

import (
	envcfg "magazine-catalog/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=50, max=200
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Values that are not positive, or a default above the maximum, fall back to DefaultConfig().
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  def.DefaultPage,
		DefaultLimit: envcfg.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     envcfg.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultLimit < 1 || cfg.MaxLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		return def
	}
	return cfg
}

func (c Config) orDefault() Config {
	if c.DefaultPage < 1 || c.DefaultLimit < 1 || c.MaxLimit < 1 {
		return DefaultConfig()
	}
	return c
}
