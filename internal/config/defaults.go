package config

import "github.com/bobmcallan/restaurant-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "restaurant-mcp",
			Host:      "localhost",
			Port:      8090,
			Transport: TransportStdio,
		},
		API: APIConfig{
			BaseURL:  "http://localhost:8080/api",
			Username: "admin",
			Password: "password",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/restaurant-mcp.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
