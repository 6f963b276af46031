package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	// No config-docker.yml ships with the repository.
	cfg, err := Load("docker", t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.RunMode)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Seed.Demo)
	assert.True(t, cfg.RateLimiter.Enabled)
	assert.Equal(t, 20.0, cfg.RateLimiter.RequestsPerSecond)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := writeConfig(t, "config-production.yml", `
server:
  port: "9000"
  runMode: release
  shutdownTimeout: 3s
logger:
  level: warn
seed:
  demo: false
  file: owners.yml
`)

	cfg, err := Load("production", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config-production.yml"), cfg.File)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.False(t, cfg.Seed.Demo)
	assert.Equal(t, "owners.yml", cfg.Seed.File)
	assert.True(t, cfg.IsProduction())
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_SERVER_RUNMODE", "test")
	t.Setenv("BACKOFFICE_SEED_DEMO", "false")
	t.Setenv("PORT", "4444")

	cfg, err := Load("docker", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Server.RunMode)
	assert.False(t, cfg.Seed.Demo)
	assert.Equal(t, "4444", cfg.Server.Port)
	assert.Equal(t, ":4444", cfg.Addr())
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := writeConfig(t, "config-production.yml", "server: [unterminated")

	_, err := Load("production", dir)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:      ServerConfig{Port: "3001", RunMode: "debug"},
			RateLimiter: RateLimiterConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1},
			Metrics:     MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"non numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"unknown run mode", func(c *Config) { c.Server.RunMode = "turbo" }},
		{"zero rate", func(c *Config) { c.RateLimiter.RequestsPerSecond = 0 }},
		{"zero burst", func(c *Config) { c.RateLimiter.Burst = 0 }},
		{"tracing without endpoint", func(c *Config) { c.Tracing.Enabled = true }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	c := valid()
	c.RateLimiter = RateLimiterConfig{Enabled: false}
	assert.NoError(t, c.Validate(), "limits are ignored when the limiter is off")
}
