package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PATH", "")
	t.Setenv("COOLDOWN_WRITE_MAX", "9")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "data/journal.db", cfg.DBPath)
	assert.Equal(t, "data/spots.json", cfg.CatalogPath)
	assert.Equal(t, 9, cfg.CooldownWriteMax)
	assert.Equal(t, 3, cfg.CooldownWriteMin)
}

func TestLoadConfigCooldowns(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("COOLDOWN_WRITE_MIN", "2")
	t.Setenv("COOLDOWN_WRITE_MAX", "4")
	t.Setenv("COOLDOWN_READ_MIN", "6")
	t.Setenv("COOLDOWN_READ_MAX", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.CooldownWriteMin)
	assert.Equal(t, 4, cfg.CooldownWriteMax)
	assert.Equal(t, 6, cfg.CooldownReadMin)
	assert.Equal(t, 8, cfg.CooldownReadMax)
}

func TestLoadConfigBadInt(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("COOLDOWN_READ_MIN", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "COOLDOWN_READ_MIN")
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.validateBot())
	cfg.DiscordToken = "t"
	assert.Error(t, cfg.validateBot())
	cfg.DevGuild = "g"
	assert.NoError(t, cfg.validateBot())
}
