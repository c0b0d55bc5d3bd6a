package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataScienceBioLab/accesskit/pkg/config"
)

type testConfig struct {
	Name     string        `env:"TEST_APP_NAME" envDefault:"accesskit"`
	Port     int           `env:"TEST_APP_PORT" envDefault:"8080"`
	Debug    bool          `env:"TEST_APP_DEBUG" envDefault:"false"`
	Interval time.Duration `env:"TEST_APP_INTERVAL" envDefault:"5m"`
	Required string        `env:"TEST_APP_REQUIRED"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "accesskit", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Empty(t, cfg.Required)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_APP_NAME", "custom")
	t.Setenv("TEST_APP_PORT", "9090")
	t.Setenv("TEST_APP_DEBUG", "true")
	t.Setenv("TEST_APP_INTERVAL", "30s")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}

func TestLoad_ParseFailure(t *testing.T) {
	t.Setenv("TEST_APP_PORT", "not-a-number")

	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	t.Run("populates the config", func(t *testing.T) {
		var cfg testConfig
		config.MustLoad(&cfg)
		assert.Equal(t, "accesskit", cfg.Name)
	})

	t.Run("panics on parse failure", func(t *testing.T) {
		t.Setenv("TEST_APP_PORT", "boom")

		var cfg testConfig
		assert.Panics(t, func() {
			config.MustLoad(&cfg)
		})
	})
}
