package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Offload OffloadConfig `mapstructure:"offload"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g. 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// QueueConfig represents message queue configuration for the offload transport
type QueueConfig struct {
	Type     string `mapstructure:"type"`     // Queue type: memory (default), nats, redis
	URL      string `mapstructure:"url"`      // Server URL (e.g. nats://localhost:4222, redis://localhost:6379)
	Username string `mapstructure:"username"` // Optional authentication
	Password string `mapstructure:"password"` // Optional authentication
	RedisDB  int    `mapstructure:"redis_db"` // Redis database number (default: 0)
}

// OffloadConfig represents calculation offload configuration.
// Below SizeThreshold points, calculations always run synchronously in
// process; above it, requests go over the queue and fall back to the
// synchronous path on timeout or transport failure.
type OffloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Subject       string        `mapstructure:"subject"`        // Request subject on the queue
	Timeout       time.Duration `mapstructure:"timeout"`        // Reply wait before synchronous fallback
	SizeThreshold int           `mapstructure:"size_threshold"` // Minimum subgroup size worth offloading
	Worker        bool          `mapstructure:"worker"`         // Serve offload requests in this process
}

// EngineConfig represents calculation engine defaults, used when an update
// request's settings omit the corresponding keys
type EngineConfig struct {
	DefaultChartModel    string `mapstructure:"default_chart_model"`
	ShiftN               int    `mapstructure:"shift_n"`
	TrendN               int    `mapstructure:"trend_n"`
	ImprovementDirection string `mapstructure:"improvement_direction"` // increase, decrease, neutral
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	switch c.Queue.Type {
	case "", "memory", "nats", "redis":
	default:
		return fmt.Errorf("queue.type must be memory, nats or redis, got %q", c.Queue.Type)
	}

	if c.Offload.Enabled {
		if c.Offload.Subject == "" {
			return fmt.Errorf("offload.subject is required when offload is enabled")
		}
		if c.Offload.Timeout <= 0 {
			return fmt.Errorf("offload.timeout must be positive, got %s", c.Offload.Timeout)
		}
		if c.Offload.SizeThreshold < 0 {
			return fmt.Errorf("offload.size_threshold must be non-negative, got %d", c.Offload.SizeThreshold)
		}
	}

	switch c.Engine.ImprovementDirection {
	case "", "increase", "decrease", "neutral":
	default:
		return fmt.Errorf("engine.improvement_direction must be increase, decrease or neutral, got %q",
			c.Engine.ImprovementDirection)
	}
	if c.Engine.ShiftN < 2 {
		return fmt.Errorf("engine.shift_n must be at least 2, got %d", c.Engine.ShiftN)
	}
	if c.Engine.TrendN < 2 {
		return fmt.Errorf("engine.trend_n must be at least 2, got %d", c.Engine.TrendN)
	}

	return nil
}
