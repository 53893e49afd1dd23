package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[strings.ToLower(c.Server.LogLevel)] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// OMDb validation
	if c.OMDb.APIKey == "" {
		errs = append(errs, "omdb.api_key: required")
	}
	if c.OMDb.BaseURL != "" {
		u, err := url.Parse(c.OMDb.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("omdb.base_url: must be an absolute http(s) URL, got %q", c.OMDb.BaseURL))
		}
	}
	if c.OMDb.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("omdb.timeout: must not be negative, got %s", c.OMDb.Timeout))
	}

	// Cache validation
	if c.Cache.SearchTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.search_ttl: must not be negative, got %s", c.Cache.SearchTTL))
	}
	if c.Cache.DetailTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.detail_ttl: must not be negative, got %s", c.Cache.DetailTTL))
	}
	if c.Cache.SweepInterval < 0 {
		errs = append(errs, fmt.Sprintf("cache.sweep_interval: must not be negative, got %s", c.Cache.SweepInterval))
	}

	// CORS validation
	for i, origin := range c.CORS.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, fmt.Sprintf("cors.allowed_origins[%d]: must not be empty", i))
		}
	}

	return errs
}
