package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/hexlife/patterns"
	"github.com/sheikhrachel/hexlife/rules"
)

// Config holds the configuration for the simulation
type Config struct {
	Rule                string        `json:"rule" yaml:"rule"`
	Workers             int           `json:"workers" yaml:"workers"` // 0 uses every CPU
	Refractory          bool          `json:"refractory" yaml:"refractory"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	Seed                int64         `json:"seed" yaml:"seed"`
	SeedRadius          int64         `json:"seed_radius" yaml:"seed_radius"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	NoiseScale          float64       `json:"noise_scale" yaml:"noise_scale"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	StatsInterval       time.Duration `json:"stats_interval" yaml:"stats_interval"`
	LogLevel            string        `json:"log_level" yaml:"log_level"`
	Dump                bool          `json:"dump" yaml:"dump"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rule:                rules.DefaultRule.String(),
		Workers:             1,
		Refractory:          true,
		FrameRate:           100 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		Seed:                42,
		SeedRadius:          12,
		RandomDensity:       0.15,
		NoiseScale:          0.2,
		InjectionCount:      6,
		StatsInterval:       2 * time.Second,
		LogLevel:            "info",
		Dump:                false,
	}
}

// LoadConfig loads configuration from a YAML (.yaml, .yml) or JSON file,
// on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// Validate checks the values that cannot be used as given
func (c Config) Validate() error {
	if _, err := c.ParseRule(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch {
	case c.Workers < 0:
		return errors.Errorf("[Validate] workers must not be negative, got %d", c.Workers)
	case c.SeedRadius < 0:
		return errors.Errorf("[Validate] seed_radius must not be negative, got %d", c.SeedRadius)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.StagnationThreshold < 1:
		return errors.Errorf("[Validate] stagnation_threshold must be positive, got %d", c.StagnationThreshold)
	case c.FrameRate < 0 || c.StatsInterval < 0:
		return errors.New("[Validate] durations must not be negative")
	}
	return nil
}

// ParseRule parses the configured rule notation
func (c Config) ParseRule() (rules.Rule, error) {
	r, err := rules.ParseRule(c.Rule)
	if err != nil {
		return rules.Rule{}, errors.Wrap(err, "[ParseRule] rule")
	}
	return r, nil
}

// Level parses the configured log level
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrap(err, "[Level] log_level")
	}
	return level, nil
}

// Soup returns the seeding parameters for a run with the given seed
func (c Config) Soup(seed int64) patterns.SoupConfig {
	return patterns.SoupConfig{
		Radius:  c.SeedRadius,
		Density: c.RandomDensity,
		Scale:   c.NoiseScale,
		Seed:    seed,
	}
}
