// Package config loads the API server configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	Cors        CorsConfig
	RateLimiter RateLimiterConfig
	Tracing     TracingConfig
	Metrics     MetricsConfig
	Seed        SeedConfig

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port            string
	RunMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
}

type CorsConfig struct {
	AllowOrigins string
}

type RateLimiterConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	Endpoint    string
	SampleRatio float64
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// SeedConfig chooses the initial store content. File wins over Demo.
type SeedConfig struct {
	File string
	Demo bool
}

// EnvPrefix is prepended to every environment override,
// e.g. BACKOFFICE_SERVER_PORT.
const EnvPrefix = "BACKOFFICE"

var defaults = map[string]any{
	"server.port":                   "3001",
	"server.runMode":                "debug",
	"server.readTimeout":            "15s",
	"server.writeTimeout":           "15s",
	"server.idleTimeout":            "60s",
	"server.shutdownTimeout":        "10s",
	"logger.level":                  "info",
	"logger.encoding":               "json",
	"logger.development":            false,
	"cors.allowOrigins":             "*",
	"rateLimiter.enabled":           true,
	"rateLimiter.requestsPerSecond": 20.0,
	"rateLimiter.burst":             40,
	"tracing.enabled":               false,
	"tracing.serviceName":           "backoffice-api",
	"tracing.environment":           "development",
	"tracing.endpoint":              "http://localhost:4318",
	"tracing.sampleRatio":           1.0,
	"metrics.enabled":               true,
	"metrics.path":                  "/metrics",
	"seed.file":                     "",
	"seed.demo":                     true,
}

// Load reads config-<env>.yml for appEnv from the usual locations plus
// extraPaths, applies BACKOFFICE_* and PORT overrides and validates the
// result. A missing file is not an error; defaults are used instead.
func Load(appEnv string, extraPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetConfigName(configName(appEnv))

	for _, p := range extraPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")
	if wd, err := os.Getwd(); err == nil {
		v.AddConfigPath(filepath.Join(wd, "config"))
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func configName(appEnv string) string {
	switch appEnv {
	case "docker":
		return "config-docker"
	case "production":
		return "config-production"
	default:
		return "config-development"
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if n, err := strconv.Atoi(c.Server.Port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("server.port %q is not a valid port", c.Server.Port)
	}

	switch c.Server.RunMode {
	case "debug", "development", "release", "production", "test":
	default:
		return fmt.Errorf("server.runMode %q is not one of debug, release, test", c.Server.RunMode)
	}

	if c.RateLimiter.Enabled {
		if c.RateLimiter.RequestsPerSecond <= 0 {
			return errors.New("rateLimiter.requestsPerSecond must be positive")
		}
		if c.RateLimiter.Burst <= 0 {
			return errors.New("rateLimiter.burst must be positive")
		}
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.New("tracing.endpoint is required when tracing is enabled")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.RunMode == "debug" || c.Server.RunMode == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.RunMode == "release" || c.Server.RunMode == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
