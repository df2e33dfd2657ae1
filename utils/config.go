package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const envPrefix = "GOL_"

// Seed patterns understood by the game
const (
	PatternEmpty       = "empty"
	PatternInteresting = "interesting"
	PatternGlider      = "glider"
	PatternRandom      = "random"
)

var (
	ErrUnknownPattern = errors.New("unknown seed pattern")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds the configuration for the game. Values come from DefaultConfig,
// then the JSON file, then GOL_-prefixed environment variables.
type Config struct {
	Pattern             string        `json:"pattern" env:"PATTERN"`
	Seed                int64         `json:"seed" env:"SEED"` // 0 draws a fresh seed
	FrameRate           time.Duration `json:"frame_rate" env:"FRAME_RATE"`
	AutoRestart         bool          `json:"auto_restart" env:"AUTO_RESTART"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"STAGNATION_THRESHOLD"`
	UseParallel         bool          `json:"use_parallel" env:"USE_PARALLEL"`
	Workers             int           `json:"workers" env:"WORKERS"`
	UseMemoryPool       bool          `json:"use_memory_pool" env:"USE_MEMORY_POOL"`
	MaxGenerations      int           `json:"max_generations" env:"MAX_GENERATIONS"`
	InjectionCount      int           `json:"injection_count" env:"INJECTION_COUNT"`
	BlockView           bool          `json:"block_view" env:"BLOCK_VIEW"`
	LogLevel            string        `json:"log_level" env:"LOG_LEVEL"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Pattern:             PatternRandom,
		FrameRate:           100 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseParallel:         false,
		Workers:             runtime.NumCPU(),
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		InjectionCount:      3,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a JSON file and applies environment
// overrides. A missing file is not an error.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	case !os.IsNotExist(err):
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = env.ParseWithOptions(&config, env.Options{Prefix: envPrefix}); err != nil {
		return config, errors.Wrap(err, "[LoadConfig] failed to parse environment")
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] %+v", filename)
	}

	return config, nil
}

// Validate checks that the config describes a runnable game
func (c Config) Validate() error {
	switch c.Pattern {
	case PatternEmpty, PatternInteresting, PatternGlider, PatternRandom:
	default:
		return errors.Wrapf(ErrUnknownPattern, "%q", c.Pattern)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %s", c.FrameRate)
	}
	if c.StagnationThreshold < 1 {
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be positive, got %d", c.StagnationThreshold)
	}
	if c.UseParallel && c.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	}
	if c.InjectionCount < 0 {
		return errors.Wrapf(ErrInvalidConfig, "injection_count must not be negative, got %d", c.InjectionCount)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error")
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(ErrInvalidConfig, "log_level %q", c.LogLevel)
	}
	return level, nil
}
