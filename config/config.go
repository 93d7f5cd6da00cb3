// Package config loads the runtime configuration of stagehand from the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sarchlab/stagehand/timing"
)

// Config is the runtime configuration.
type Config struct {
	LogLevel       string  `env:"STAGEHAND_LOG_LEVEL" envDefault:"info"`
	FrameRate      float64 `env:"STAGEHAND_FRAME_RATE" envDefault:"60"`
	StallThreshold float64 `env:"STAGEHAND_STALL_THRESHOLD" envDefault:"0"`
	MonitorPort    int     `env:"STAGEHAND_MONITOR_PORT" envDefault:"0"`
	RecordPath     string  `env:"STAGEHAND_RECORD_PATH"`
	ParallelIDs    bool    `env:"STAGEHAND_PARALLEL_IDS" envDefault:"false"`
}

// Load reads the given .env files, then parses the environment. Variables
// that are already set take precedence over the files.
func Load(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame rate must be positive, got %g",
			c.FrameRate))
	}

	if c.StallThreshold < 0 {
		errs = append(errs, fmt.Errorf("stall threshold must not be negative, got %g",
			c.StallThreshold))
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid monitor port %d", c.MonitorPort))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Freq returns the frame rate.
func (c *Config) Freq() timing.Freq {
	return timing.Freq(c.FrameRate)
}

// Threshold returns the stall threshold.
func (c *Config) Threshold() timing.VTimeInSec {
	return timing.VTimeInSec(c.StallThreshold)
}

// Logger creates a logger that writes to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}
