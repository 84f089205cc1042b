package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath           string
	CatalogPath      string
	LogFile          string
	DiscordToken     string
	DevGuild         string
	CooldownWriteMin int
	CooldownWriteMax int
	CooldownReadMin  int
	CooldownReadMax  int
}

// LoadConfig reads .env if present, then the environment. The Discord
// settings are checked by the bot command, not here.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cooldownWriteMin, err := loadInt("COOLDOWN_WRITE_MIN", 3)
	if err != nil {
		return nil, err
	}
	cooldownWriteMax, err := loadInt("COOLDOWN_WRITE_MAX", 5)
	if err != nil {
		return nil, err
	}
	cooldownReadMin, err := loadInt("COOLDOWN_READ_MIN", 1)
	if err != nil {
		return nil, err
	}
	cooldownReadMax, err := loadInt("COOLDOWN_READ_MAX", 1)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBPath:           loadString("DB_PATH", "data/journal.db"),
		CatalogPath:      loadString("CATALOG_PATH", "data/spots.json"),
		LogFile:          os.Getenv("LOG_FILE"),
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DevGuild:         os.Getenv("DEV_GUILD_ID"),
		CooldownWriteMin: cooldownWriteMin,
		CooldownWriteMax: cooldownWriteMax,
		CooldownReadMin:  cooldownReadMin,
		CooldownReadMax:  cooldownReadMax,
	}, nil
}

func (c *Config) validateBot() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("No DISCORD_TOKEN in environment")
	}
	if c.DevGuild == "" {
		return fmt.Errorf("No DEV_GUILD_ID in environment")
	}
	return nil
}

func loadString(key, defValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defValue
}

func loadInt(key string, defValue int) (int, error) {
	value := os.Getenv(key)
	if value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return n, nil
	}

	return defValue, nil
}
