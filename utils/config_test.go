package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"pattern": "glider", "seed": 42, "max_generations": 10, "use_parallel": true, "workers": 4}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, PatternGlider, config.Pattern)
	assert.Equal(t, int64(42), config.Seed)
	assert.Equal(t, 10, config.MaxGenerations)
	assert.True(t, config.UseParallel)
	assert.Equal(t, 4, config.Workers)
	assert.Equal(t, DefaultConfig().StagnationThreshold, config.StagnationThreshold)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"pattern": "glider", "seed": 42}`)
	t.Setenv("GOL_PATTERN", "interesting")
	t.Setenv("GOL_FRAME_RATE", "250ms")
	t.Setenv("GOL_BLOCK_VIEW", "true")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, PatternInteresting, config.Pattern)
	assert.Equal(t, int64(42), config.Seed)
	assert.Equal(t, 250*time.Millisecond, config.FrameRate)
	assert.True(t, config.BlockView)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"pattern": `))
		assert.ErrorContains(t, err, "failed to unmarshal")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("GOL_SEED", "not-a-number")
		_, err := LoadConfig(writeConfig(t, `{}`))
		assert.ErrorContains(t, err, "failed to parse environment")
	})

	t.Run("unknown pattern", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"pattern": "spaceship"}`))
		assert.ErrorIs(t, err, ErrUnknownPattern)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative frame rate", mutate: func(c *Config) { c.FrameRate = -time.Second }, wantErr: ErrInvalidConfig},
		{name: "zero stagnation threshold", mutate: func(c *Config) { c.StagnationThreshold = 0 }, wantErr: ErrInvalidConfig},
		{name: "parallel without workers", mutate: func(c *Config) { c.UseParallel, c.Workers = true, 0 }, wantErr: ErrInvalidConfig},
		{name: "serial ignores workers", mutate: func(c *Config) { c.UseParallel, c.Workers = false, 0 }},
		{name: "negative injection", mutate: func(c *Config) { c.InjectionCount = -1 }, wantErr: ErrInvalidConfig},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrInvalidConfig},
		{name: "empty pattern", mutate: func(c *Config) { c.Pattern = "" }, wantErr: ErrUnknownPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	config := DefaultConfig()
	config.LogLevel = "debug"

	level, err := config.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
