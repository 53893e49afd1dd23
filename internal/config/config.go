// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied when a key is absent from the file.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8484
	DefaultLogLevel      = "info"
	DefaultOMDbBaseURL   = "https://www.omdbapi.com/"
	DefaultOMDbTimeout   = 10 * time.Second
	DefaultCacheTTL      = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	OMDb   OMDbConfig   `toml:"omdb"`
	Cache  CacheConfig  `toml:"cache"`
	CORS   CORSConfig   `toml:"cors"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type OMDbConfig struct {
	BaseURL string        `toml:"base_url"`
	APIKey  string        `toml:"api_key"`
	Timeout time.Duration `toml:"timeout"`
}

// CacheConfig sets the lifetime of cached lookups. A TTL of zero disables
// caching for that kind of lookup.
type CacheConfig struct {
	SearchTTL     time.Duration `toml:"search_ttl"`
	DetailTTL     time.Duration `toml:"detail_ttl"`
	SweepInterval time.Duration `toml:"sweep_interval"`
	SingleFlight  bool          `toml:"single_flight"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load reads, parses, and validates the configuration file.
// Unresolved environment variables and validation failures are reported
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults(md)
	return &cfg, missing, nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = DefaultOMDbBaseURL
	}
	if c.OMDb.Timeout == 0 {
		c.OMDb.Timeout = DefaultOMDbTimeout
	}

	// An explicit zero TTL means "don't cache", so only fill in absent keys.
	if !md.IsDefined("cache", "search_ttl") {
		c.Cache.SearchTTL = DefaultCacheTTL
	}
	if !md.IsDefined("cache", "detail_ttl") {
		c.Cache.DetailTTL = DefaultCacheTTL
	}
	if !md.IsDefined("cache", "sweep_interval") {
		c.Cache.SweepInterval = DefaultSweepInterval
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references in content.
// References inside TOML comments are left alone.
//
//	${VAR}          value of VAR; left unchanged and reported if unset
//	${VAR:-default} value of VAR, or default when unset or empty
//	${VAR:?message} value of VAR; left unchanged and reported with message
//	                when unset or empty
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	expand := func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, set := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !set {
				missing = append(missing, name)
				return match
			}
			return value
		}
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		cut := commentStart(line)
		lines[i] = envVarPattern.ReplaceAllStringFunc(line[:cut], expand) + line[cut:]
	}
	return strings.Join(lines, "\n"), missing
}

// commentStart returns the index of the '#' that opens a comment on line,
// or len(line) if there is none. A '#' inside a quoted string does not count.
// Multi-line strings are not tracked across lines.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '"' && c == '\\':
			i++ // skip the escaped byte
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		}
	}
	return len(line)
}
