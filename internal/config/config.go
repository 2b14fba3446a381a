// Package config provides configuration loading for briefd.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables, with hardcoded defaults for everything else.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete briefd configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Analyzer  AnalyzerConfig  `koanf:"analyzer"`
	Narrative NarrativeConfig `koanf:"narrative"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
	// File enables rotating file output when non-empty.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// TelemetryConfig holds OTLP exporter configuration.
type TelemetryConfig struct {
	Enabled     bool    `koanf:"enabled"`
	ServiceName string  `koanf:"service_name"`
	Endpoint    string  `koanf:"endpoint"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// AnalyzerConfig tunes the relevance engine.
type AnalyzerConfig struct {
	// Workers bounds the classification worker pool; 0 means GOMAXPROCS.
	Workers int `koanf:"workers"`
	// RecencyWindowDays is the tier-3 recency window.
	RecencyWindowDays int `koanf:"recency_window_days"`
	// MaxAgeDays is the age past which tier-2/3 items are excluded.
	MaxAgeDays int `koanf:"max_age_days"`
}

// NarrativeConfig selects and configures the prep document generator.
type NarrativeConfig struct {
	Provider string `koanf:"provider"` // "template" or "openai"
	Model    string `koanf:"model"`
	APIKey   string `koanf:"api_key"`
	BaseURL  string `koanf:"base_url"`
}

// SchedulerConfig controls periodic briefing refresh.
type SchedulerConfig struct {
	Enabled bool `koanf:"enabled"`
	// Spec is a cron spec, e.g. "@every 15m" or "0 7 * * *".
	Spec string `koanf:"spec"`
	// Lookahead bounds how far ahead meetings are picked up.
	Lookahead time.Duration `koanf:"lookahead"`
	// RunTimeout bounds one per-meeting analysis run.
	RunTimeout time.Duration `koanf:"run_timeout"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q (must be json or console)", c.Logging.Format)
	}

	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		return errors.New("service name required when telemetry is enabled")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("invalid sample rate: %v (must be 0-1)", c.Telemetry.SampleRate)
	}

	if c.Analyzer.RecencyWindowDays < 0 || c.Analyzer.MaxAgeDays < 0 {
		return errors.New("analyzer windows must be non-negative")
	}
	if c.Analyzer.MaxAgeDays > 0 && c.Analyzer.RecencyWindowDays > c.Analyzer.MaxAgeDays {
		return fmt.Errorf("recency window (%d) cannot exceed max age (%d)",
			c.Analyzer.RecencyWindowDays, c.Analyzer.MaxAgeDays)
	}

	switch c.Narrative.Provider {
	case "template", "openai":
	default:
		return fmt.Errorf("invalid narrative provider: %q (must be template or openai)", c.Narrative.Provider)
	}

	if c.Scheduler.Enabled {
		if c.Scheduler.Spec == "" {
			return errors.New("scheduler spec required when scheduler is enabled")
		}
		if c.Scheduler.Lookahead <= 0 {
			return errors.New("scheduler lookahead must be positive")
		}
	}

	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 28
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "briefd"
	}
	if cfg.Telemetry.Endpoint == "" {
		cfg.Telemetry.Endpoint = "localhost:4318"
	}
	if cfg.Telemetry.SampleRate == 0 {
		cfg.Telemetry.SampleRate = 1.0
	}

	if cfg.Analyzer.RecencyWindowDays == 0 {
		cfg.Analyzer.RecencyWindowDays = 7
	}
	if cfg.Analyzer.MaxAgeDays == 0 {
		cfg.Analyzer.MaxAgeDays = 14
	}

	if cfg.Narrative.Provider == "" {
		cfg.Narrative.Provider = "template"
	}

	if cfg.Scheduler.Spec == "" {
		cfg.Scheduler.Spec = "@every 15m"
	}
	if cfg.Scheduler.Lookahead == 0 {
		cfg.Scheduler.Lookahead = 24 * time.Hour
	}
	if cfg.Scheduler.RunTimeout == 0 {
		cfg.Scheduler.RunTimeout = time.Minute
	}
}
