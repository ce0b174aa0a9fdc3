package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STAGE", "prod")
	for _, k := range []string{"PORT", "JWT_SECRET", "CORS_ORIGINS", "BOT_SEED", "DEFAULT_GRID_SIZE", "MAX_GAMES", "GAME_IDLE_TTL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8009" {
		t.Errorf("expected port 8009, got %s", cfg.Port)
	}
	if cfg.DefaultGridSize != 10 || cfg.MaxGames != 1000 || cfg.BotSeed != 0 {
		t.Errorf("unexpected numeric defaults %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS, got %v", cfg.CORSOrigins)
	}
	if cfg.GameIdleTTL != 2*time.Hour {
		t.Errorf("expected 2h idle ttl, got %v", cfg.GameIdleTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STAGE", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("BOT_SEED", "42")
	t.Setenv("DEFAULT_GRID_SIZE", "12")
	t.Setenv("MAX_GAMES", "notanumber")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("GAME_IDLE_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9000" || cfg.BotSeed != 42 || cfg.DefaultGridSize != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxGames != 1000 {
		t.Errorf("expected fallback for bad MAX_GAMES, got %d", cfg.MaxGames)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.GameIdleTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.GameIdleTTL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BROADSIDE_TEST_KEY=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BROADSIDE_TEST_KEY", "")
	os.Unsetenv("BROADSIDE_TEST_KEY")

	LoadDotEnv(path)
	if got := os.Getenv("BROADSIDE_TEST_KEY"); got != "from-file" {
		t.Errorf("expected value from .env, got %q", got)
	}

	// A missing file is not an error.
	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
