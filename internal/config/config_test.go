package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Grid.StepSmall != 3 || cfg.Grid.StepLarge != 8 {
		t.Errorf("unexpected load steps: %d/%d", cfg.Grid.StepSmall, cfg.Grid.StepLarge)
	}
	if cfg.Grid.ScrollOffset != 100 {
		t.Errorf("unexpected scroll offset: %d", cfg.Grid.ScrollOffset)
	}
	if cfg.Grid.ScrollDelay != 300*time.Millisecond {
		t.Errorf("unexpected scroll delay: %s", cfg.Grid.ScrollDelay)
	}
	if cfg.Grid.CursorTTL != 2*time.Hour {
		t.Errorf("unexpected cursor ttl: %s", cfg.Grid.CursorTTL)
	}
	if cfg.Catalog.File != "" || cfg.Catalog.Watch {
		t.Errorf("expected built-in catalogue by default, got %+v", cfg.Catalog)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected memory cursor store by default, got redis %s", cfg.Redis.Addr)
	}
	if cfg.CSRF.HeaderName != "X-CSRF-Token" {
		t.Errorf("unexpected csrf header: %s", cfg.CSRF.HeaderName)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# local overrides\nexport SEEDLY_GRID_STEP_SMALL=4\nSEEDLY_GRID_STEP_LARGE=\"12\"\nSEEDLY_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{
			"SEEDLY_GRID_STEP_LARGE":   "10",
			"SEEDLY_GRID_SCROLL_DELAY": "450ms",
			"SEEDLY_CATALOG_FILE":      "products.yaml",
			"SEEDLY_CATALOG_WATCH":     "yes",
		}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Grid.StepSmall != 4 {
		t.Errorf("expected .env small step 4, got %d", cfg.Grid.StepSmall)
	}
	if cfg.Grid.StepLarge != 10 {
		t.Errorf("expected env map to override .env, got %d", cfg.Grid.StepLarge)
	}
	if cfg.Grid.ScrollDelay != 450*time.Millisecond {
		t.Errorf("unexpected scroll delay: %s", cfg.Grid.ScrollDelay)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.File != "products.yaml" {
		t.Errorf("unexpected catalog config: %+v", cfg.Catalog)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(context.Background(),
		WithEnvFile(""),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{
			"SEEDLY_GRID_STEP_SMALL": "0",
			"SEEDLY_LOG_LEVEL":       "loud",
			"SEEDLY_CATALOG_WATCH":   "true",
			"SEEDLY_PAGE_BLOCK_KEY":  "short",
		}),
	)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := map[string]bool{"Grid.StepSmall": true, "Log.Level": true, "Catalog.File": true, "Page.BlockKey": true}
	fields := vErr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("unexpected fields: %v", fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected invalid field %s", f)
		}
	}
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	cfg, err := Load(context.Background(),
		WithEnvFile(""),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{
			"SEEDLY_GRID_STEP_LARGE":     "lots",
			"SEEDLY_SERVER_IDLE_TIMEOUT": "soon",
		}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Grid.StepLarge != 8 {
		t.Errorf("expected fallback step, got %d", cfg.Grid.StepLarge)
	}
	if cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("expected fallback idle timeout, got %s", cfg.Server.IdleTimeout)
	}
}

func TestLoadEmptyValuesFallThrough(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SEEDLY_REDIS_ADDR=localhost:6379\nnot a pair\n=orphan\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{
			"SEEDLY_REDIS_ADDR":         "",
			"SEEDLY_CSRF_COOKIE_SECURE": "maybe",
			"SEEDLY_GRID_SCROLL_OFFSET": " 40 ",
		}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected empty override to fall through to .env, got %q", cfg.Redis.Addr)
	}
	if cfg.CSRF.CookieSecure {
		t.Errorf("expected unrecognised flag to keep default")
	}
	if cfg.Grid.ScrollOffset != 40 {
		t.Errorf("expected trimmed offset 40, got %d", cfg.Grid.ScrollOffset)
	}

	if _, err := Load(context.Background(), WithEnvFile(filepath.Join(dir, "missing.env")), WithoutSystemEnv()); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}
