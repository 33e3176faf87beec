// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads pulsesim settings from YAML files and environment
// variables.
//
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config contains all pulsesim settings.
//
type Config struct {
	// Presses is the number of trigger events simulated by the count command.
	Presses int `yaml:"presses"`

	// Target is the module whose first low pulse is searched by the solve
	// command.
	Target string `yaml:"target"`

	// MaxTriggers bounds cycle detection.
	MaxTriggers uint64 `yaml:"max_triggers"`

	// Workers is the number of clusters analysed concurrently. 0 or 1 means
	// a single shared simulation.
	Workers int `yaml:"workers"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures logging.
//
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `yaml:"level"`
}

// MetricsConfig configures the metrics dump.
//
type MetricsConfig struct {
	// Enabled dumps Prometheus metrics to stderr at exit.
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with default values.
//
func Default() *Config {
	return &Config{
		Presses:     1000,
		Target:      "rx",
		MaxTriggers: 1 << 20,
		Workers:     1,
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load returns the defaults, overridden by the given YAML file if path is not
// empty, then by environment variables.
//
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromFile loads configuration from a YAML file. Missing keys keep their
// default value.
//
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return c, nil
}

// Validate checks that the configuration is valid.
//
func (c *Config) Validate() error {
	if c.Presses < 0 {
		return errors.Errorf("presses must be non-negative, got %d", c.Presses)
	}
	if c.Target == "" {
		return errors.New("target must not be empty")
	}
	if c.MaxTriggers == 0 {
		return errors.New("max_triggers must be positive")
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("PULSESIM_TARGET"); v != "" {
		c.Target = v
	}
	if v := os.Getenv("PULSESIM_MAX_TRIGGERS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "PULSESIM_MAX_TRIGGERS")
		}
		c.MaxTriggers = n
	}
	if v := os.Getenv("PULSESIM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "PULSESIM_WORKERS")
		}
		c.Workers = n
	}
	if v := os.Getenv("PULSESIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}
