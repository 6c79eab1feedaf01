package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.MapsBaseURL == "" {
		t.Fatalf("expected default maps base url")
	}
	if cfg.ReportTimeoutSec <= 0 {
		t.Fatalf("expected default report timeout")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MAPS_API_KEY", "key-1")
	t.Setenv("REPORT_TIMEOUT_SEC", "30")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.MapsAPIKey != "key-1" {
		t.Fatalf("expected override maps key")
	}
	if cfg.ReportTimeoutSec != 30 {
		t.Fatalf("expected override report timeout")
	}
}
