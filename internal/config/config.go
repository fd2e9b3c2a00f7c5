package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/restaurant-mcp/internal/common"
)

// Transport names accepted by Server.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	API     APIConfig            `toml:"api"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Transport string `toml:"transport"`
}

// APIConfig contains the restaurant backend connection settings.
// One triple is shared by every resource client.
type APIConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Timeout  string `toml:"timeout"`
}

// GetTimeout parses the transport timeout. Zero means the net/http default (none).
func (c *APIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Addr returns the listen address for the HTTP transport.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(config)

	return config, nil
}

// loadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// applyEnvOverrides applies RESTAURANT_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESTAURANT_API_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("RESTAURANT_API_USERNAME"); v != "" {
		config.API.Username = v
	}
	if v := os.Getenv("RESTAURANT_API_PASSWORD"); v != "" {
		config.API.Password = v
	}
	if v := os.Getenv("RESTAURANT_API_TIMEOUT"); v != "" {
		config.API.Timeout = v
	}
	if v := os.Getenv("RESTAURANT_SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			config.Server.Port = p
		}
	}
	if v := os.Getenv("RESTAURANT_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("RESTAURANT_TRANSPORT"); v != "" {
		config.Server.Transport = v
	}
	if v := os.Getenv("RESTAURANT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host, transport string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if transport != "" {
		config.Server.Transport = transport
	}
}

// Validate checks mandatory fields and returns one message per problem.
// An empty result means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		issues = append(issues, "api.base_url is required (RESTAURANT_API_BASE_URL)")
	} else if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		issues = append(issues, fmt.Sprintf("api.base_url %q must be an absolute http(s) URL", base))
	}
	if c.API.Username == "" {
		issues = append(issues, "api.username is required (RESTAURANT_API_USERNAME)")
	}
	if c.API.Password == "" {
		issues = append(issues, "api.password is required (RESTAURANT_API_PASSWORD)")
	}
	if c.API.Timeout != "" {
		if d, err := time.ParseDuration(c.API.Timeout); err != nil || d < 0 {
			issues = append(issues, fmt.Sprintf("api.timeout %q is not a valid duration", c.API.Timeout))
		}
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
		}
	default:
		issues = append(issues, fmt.Sprintf("server.transport %q must be %q or %q", c.Server.Transport, TransportStdio, TransportHTTP))
	}

	return issues
}
