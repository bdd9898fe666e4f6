package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.False(t, cfg.Bot.Enabled)
	assert.Equal(t, 30, cfg.Bot.PollTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_ENABLED", "true")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_DEBUG", "true")
	t.Setenv("BOT_POLL_TIMEOUT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.True(t, cfg.Bot.Debug)
	assert.Equal(t, 5, cfg.Bot.PollTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BotTokenRequired(t *testing.T) {
	t.Setenv("BOT_ENABLED", "true")
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("BOT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_BURST", "many")

	_, err := Load()
	assert.Error(t, err)
}
