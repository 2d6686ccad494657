package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "APP_TIMEZONE", "NOTIFY_LOOKAHEAD_DAYS", "REFILL_THRESHOLD_DAYS", "ODIN_BASE_URL", "ODIN_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBDSN != "" || cfg.LookaheadDays != 7 || cfg.RefillThresholdDays != 7 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Odin.Enabled() {
		t.Fatalf("odin should be disabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("NOTIFY_LOOKAHEAD_DAYS", "14")
	t.Setenv("REFILL_THRESHOLD_DAYS", "3")
	t.Setenv("ODIN_BASE_URL", "http://odin")
	t.Setenv("ODIN_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Location.String() != "America/Argentina/Buenos_Aires" {
		t.Fatalf("unexpected location %s", cfg.Location)
	}
	if cfg.LookaheadDays != 14 || cfg.RefillThresholdDays != 3 || !cfg.Odin.Enabled() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("NOTIFY_LOOKAHEAD_DAYS", "seven")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric lookahead")
	}

	t.Setenv("NOTIFY_LOOKAHEAD_DAYS", "")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestLoadDotEnv_DoesNotOverrideEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9999\nREFILL_THRESHOLD_DAYS=2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("REFILL_THRESHOLD_DAYS", "")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if os.Getenv("PORT") != "7000" {
		t.Fatalf("existing env must win, got %s", os.Getenv("PORT"))
	}
}
