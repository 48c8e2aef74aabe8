// Package config loads training and logging settings from a YAML file and
// the environment.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"dslr/pkg/stats"
)

// Config holds the application configuration.
type Config struct {
	Training Training `yaml:"training"`
	Log      Log      `yaml:"log"`
	// Registry is the SQLite file runs are recorded in; empty disables it.
	Registry string `yaml:"registry"`
}

// Training holds the preparation and descent settings.
type Training struct {
	LearningRate  float64  `yaml:"learning_rate"`
	Iterations    int      `yaml:"iterations"`
	Normalization string   `yaml:"normalization"`
	SplitFactor   int      `yaml:"split_factor"`
	LogEvery      int      `yaml:"log_every"`
	LabelColumn   string   `yaml:"label_column"`
	IgnoreColumns []string `yaml:"ignore_columns"`
	FloatOnly     bool     `yaml:"float_only"`
}

// Log configures the logger built by logx.
type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // console or json
	// File, when set, receives a rotated copy of the log.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Training: Training{
			LearningRate:  0.1,
			Iterations:    1000,
			Normalization: stats.StdDev.String(),
			SplitFactor:   2,
			LogEvery:      100,
		},
		Log: Log{
			Level:      "info",
			Encoding:   "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	cfg.Log.Level = getEnv("DSLR_LOG_LEVEL", cfg.Log.Level)
	cfg.Training.LearningRate = getEnvAsFloat("DSLR_LEARNING_RATE", cfg.Training.LearningRate)
	cfg.Training.Iterations = getEnvAsInt("DSLR_ITERATIONS", cfg.Training.Iterations)
	cfg.Training.Normalization = getEnv("DSLR_NORMALIZATION", cfg.Training.Normalization)
	cfg.Registry = getEnv("DSLR_REGISTRY", cfg.Registry)
	return cfg, nil
}

// Method parses the configured normalization.
func (c *Config) Method() (stats.Method, error) {
	return stats.ParseMethod(c.Training.Normalization)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error
	if c.Training.LearningRate <= 0 {
		errs = multierr.Append(errs, errors.Errorf("learning_rate must be positive, got %g", c.Training.LearningRate))
	}
	if c.Training.Iterations <= 0 {
		errs = multierr.Append(errs, errors.Errorf("iterations must be positive, got %d", c.Training.Iterations))
	}
	if c.Training.SplitFactor <= 0 {
		errs = multierr.Append(errs, errors.Errorf("split_factor must be positive, got %d", c.Training.SplitFactor))
	}
	if c.Training.LogEvery < 0 {
		errs = multierr.Append(errs, errors.Errorf("log_every must not be negative, got %d", c.Training.LogEvery))
	}
	if _, err := c.Method(); err != nil {
		errs = multierr.Append(errs, err)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		errs = multierr.Append(errs, errors.Errorf("log encoding must be console or json, got %q", c.Log.Encoding))
	}
	return errs
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}
