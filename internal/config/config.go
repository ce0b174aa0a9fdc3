package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            string
	JWTSecret       string
	CORSOrigins     []string
	BotSeed         int64 // 0 = clock seeded
	DefaultGridSize int
	MaxGames        int // 0 = unlimited
	GameIdleTTL     time.Duration
	ReapInterval    time.Duration
	LogLevel        string
	LogFile         string
	Dev             bool
}

// Load reads configuration from environment variables with sensible defaults.
// Outside production (STAGE=prod) variables from a .env file in the working
// directory are loaded first; variables already set win.
func Load() *Config {
	if os.Getenv("STAGE") != "prod" {
		LoadDotEnv(".env")
	}
	return &Config{
		Port:            envOrDefault("PORT", "8009"),
		JWTSecret:       envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigins:     splitList(envOrDefault("CORS_ORIGINS", "*")),
		BotSeed:         int64(envInt("BOT_SEED", 0)),
		DefaultGridSize: envInt("DEFAULT_GRID_SIZE", 10),
		MaxGames:        envInt("MAX_GAMES", 1000),
		GameIdleTTL:     envDuration("GAME_IDLE_TTL", 2*time.Hour),
		ReapInterval:    envDuration("REAP_INTERVAL", time.Minute),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFile:         os.Getenv("LOG_FILE"),
		Dev:             os.Getenv("DEV") == "true" || os.Getenv("DEV_MODE") == "true",
	}
}

// LoadDotEnv loads path into the environment if it exists.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to load env file")
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-integer config value")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring invalid duration config value")
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
