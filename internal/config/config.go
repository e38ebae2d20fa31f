// Package config loads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	SaveDir  string
	DBPath   string
	Seed     int64 // 0 picks a random seed per farm
	LogLevel slog.Level
	DayTicks uint64
	Headless bool
}

// SavePath is the single save slot.
func (c Config) SavePath() string {
	return filepath.Join(c.SaveDir, "savegame.json")
}

// Load reads the environment. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		SaveDir: get("FIELDSTATION_SAVE_DIR", "saves"),
		DBPath:  get("FIELDSTATION_DB", "data/fieldstation.db"),
	}

	seed, err := strconv.ParseInt(get("FIELDSTATION_SEED", "0"), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("FIELDSTATION_SEED: %w", err)
	}
	cfg.Seed = seed

	if err := cfg.LogLevel.UnmarshalText([]byte(get("FIELDSTATION_LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("FIELDSTATION_LOG_LEVEL: %w", err)
	}

	ticks, err := strconv.ParseUint(get("FIELDSTATION_DAY_TICKS", "1800"), 10, 64)
	if err != nil || ticks == 0 {
		return cfg, fmt.Errorf("FIELDSTATION_DAY_TICKS: must be a positive integer, got %q", getenv("FIELDSTATION_DAY_TICKS"))
	}
	cfg.DayTicks = ticks

	cfg.Headless = strings.EqualFold(getenv("SDL_VIDEODRIVER"), "dummy") ||
		getenv("FIELDSTATION_HEADLESS") == "1"
	return cfg, nil
}
