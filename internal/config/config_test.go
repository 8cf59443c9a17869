package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/submitd/internal/config"
)

type testConfig struct {
	Name    string        `env:"TEST_CONFIG_NAME" envDefault:"fallback"`
	Timeout time.Duration `env:"TEST_CONFIG_TIMEOUT" envDefault:"5s"`
	Fields  []string      `env:"TEST_CONFIG_FIELDS" envSeparator:"," envDefault:"a,b"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "fallback", cfg.Name)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, []string{"a", "b"}, cfg.Fields)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_NAME", "from-env")
		t.Setenv("TEST_CONFIG_FIELDS", "email,contact.email")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, []string{"email", "contact.email"}, cfg.Fields)
	})

	t.Run("parse failure", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_TIMEOUT", "not-a-duration")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilPointer)
	})
}
