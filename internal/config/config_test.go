package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected default base URL http://localhost:8080/api, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Username != "admin" {
		t.Errorf("expected default username admin, got %s", cfg.API.Username)
	}
	if cfg.API.Password != "password" {
		t.Errorf("expected default password password, got %s", cfg.API.Password)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Errorf("expected default transport stdio, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected defaults to validate, got %v", issues)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected default base URL, got %s", cfg.API.BaseURL)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
[server]
name = "kitchen"
port = 9090
host = "0.0.0.0"
transport = "http"

[api]
base_url = "https://restaurant.example.com/api"
username = "chef"
password = "s3cret"
timeout = "15s"

[logging]
level = "debug"
outputs = ["file"]
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Name != "kitchen" {
		t.Errorf("expected name kitchen, got %s", cfg.Server.Name)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("expected addr 0.0.0.0:9090, got %s", cfg.Server.Addr())
	}
	if cfg.Server.Transport != TransportHTTP {
		t.Errorf("expected transport http, got %s", cfg.Server.Transport)
	}
	if cfg.API.BaseURL != "https://restaurant.example.com/api" {
		t.Errorf("unexpected base URL %s", cfg.API.BaseURL)
	}
	if cfg.API.Username != "chef" || cfg.API.Password != "s3cret" {
		t.Errorf("unexpected credentials %s/%s", cfg.API.Username, cfg.API.Password)
	}
	if cfg.API.GetTimeout() != 15*time.Second {
		t.Errorf("expected timeout 15s, got %s", cfg.API.GetTimeout())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if len(cfg.Logging.Outputs) != 1 || cfg.Logging.Outputs[0] != "file" {
		t.Errorf("expected outputs [file], got %v", cfg.Logging.Outputs)
	}
}

func TestLoadFromFiles_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "partial.toml")

	// Only override the username; everything else should stay default
	content := `
[api]
username = "waiter"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.API.Username != "waiter" {
		t.Errorf("expected username waiter, got %s", cfg.API.Username)
	}
	if cfg.API.Password != "password" {
		t.Errorf("expected default password, got %s", cfg.API.Password)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected default base URL, got %s", cfg.API.BaseURL)
	}
}

func TestLoadFromFiles_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	baseContent := `
[api]
base_url = "http://base:8080/api"
username = "base-user"
`
	if err := os.WriteFile(base, []byte(baseContent), 0644); err != nil {
		t.Fatal(err)
	}

	override := filepath.Join(dir, "override.toml")
	overrideContent := `
[api]
base_url = "http://override:8080/api"
`
	if err := os.WriteFile(override, []byte(overrideContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.API.BaseURL != "http://override:8080/api" {
		t.Errorf("expected base URL from override, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Username != "base-user" {
		t.Errorf("expected username from base file, got %s", cfg.API.Username)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/path.toml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "invalid.toml")

	if err := os.WriteFile(tomlPath, []byte("this is not valid {{toml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFiles(tomlPath)
	if err == nil {
		t.Error("expected error for invalid TOML, got nil")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("RESTAURANT_API_BASE_URL", "http://env-backend:8080/api")
	t.Setenv("RESTAURANT_API_USERNAME", "env-user")
	t.Setenv("RESTAURANT_API_PASSWORD", "env-pass")
	t.Setenv("RESTAURANT_API_TIMEOUT", "2s")
	t.Setenv("RESTAURANT_SERVER_PORT", "9999")
	t.Setenv("RESTAURANT_SERVER_HOST", "env-host")
	t.Setenv("RESTAURANT_TRANSPORT", "http")
	t.Setenv("RESTAURANT_LOG_LEVEL", "error")

	applyEnvOverrides(cfg)

	if cfg.API.BaseURL != "http://env-backend:8080/api" {
		t.Errorf("expected env base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Username != "env-user" || cfg.API.Password != "env-pass" {
		t.Errorf("expected env credentials, got %s/%s", cfg.API.Username, cfg.API.Password)
	}
	if cfg.API.GetTimeout() != 2*time.Second {
		t.Errorf("expected env timeout 2s, got %s", cfg.API.GetTimeout())
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "env-host" {
		t.Errorf("expected env host env-host, got %s", cfg.Server.Host)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("expected env transport http, got %s", cfg.Server.Transport)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env log level error, got %s", cfg.Logging.Level)
	}
}

func TestApplyEnvOverrides_InvalidPort(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("RESTAURANT_SERVER_PORT", "not-a-number")

	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090 for invalid env, got %d", cfg.Server.Port)
	}
}

func TestEnvOverridesFileConfig(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
[api]
password = "from-file"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RESTAURANT_API_PASSWORD", "from-env")

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.API.Password != "from-env" {
		t.Errorf("expected env override password, got %s", cfg.API.Password)
	}
}

func TestLoadFromFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RESTAURANT_API_USERNAME=dotenv-user\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// Register cleanup, then make sure the variable is absent so .env can set it.
	t.Setenv("RESTAURANT_API_USERNAME", "")
	os.Unsetenv("RESTAURANT_API_USERNAME")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.API.Username != "dotenv-user" {
		t.Errorf("expected username from .env, got %s", cfg.API.Username)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7777, "flag-host", "http")

	if cfg.Server.Port != 7777 {
		t.Errorf("expected flag port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "flag-host" {
		t.Errorf("expected flag host flag-host, got %s", cfg.Server.Host)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("expected flag transport http, got %s", cfg.Server.Transport)
	}
}

func TestApplyFlagOverrides_ZeroValuesNoOverride(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 0, "", "")

	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Errorf("expected default transport, got %s", cfg.Server.Transport)
	}
}

func TestGetTimeout_InvalidOrEmpty(t *testing.T) {
	for _, v := range []string{"", "soon"} {
		c := APIConfig{Timeout: v}
		if got := c.GetTimeout(); got != 0 {
			t.Errorf("timeout %q: expected 0, got %s", v, got)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, "must be an absolute http(s) URL"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "must be an absolute http(s) URL"},
		{"missing username", func(c *Config) { c.API.Username = "" }, "api.username is required"},
		{"missing password", func(c *Config) { c.API.Password = "" }, "api.password is required"},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }, "api.timeout"},
		{"bad transport", func(c *Config) { c.Server.Transport = "grpc" }, "server.transport"},
		{"bad port", func(c *Config) { c.Server.Transport = TransportHTTP; c.Server.Port = 70000 }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			issues := cfg.Validate()
			if len(issues) != 1 {
				t.Fatalf("expected 1 issue, got %v", issues)
			}
			if !strings.Contains(issues[0], tt.wantSub) {
				t.Errorf("expected issue containing %q, got %q", tt.wantSub, issues[0])
			}
		})
	}
}

func TestValidate_StdioIgnoresPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = 0
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected no issues for stdio with zero port, got %v", issues)
	}
}
