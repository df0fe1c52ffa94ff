package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.RPS != 20 {
		t.Errorf("expected 20 rps, got %d", cfg.RateLimit.RPS)
	}
	if cfg.RateLimit.Burst != 20 {
		t.Errorf("expected burst to default to rps, got %d", cfg.RateLimit.Burst)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Auth.Enabled() {
		t.Error("expected auth disabled without a secret")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/reports.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, ,https://map.example")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_TOKEN_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.DB.Path != "/tmp/reports.db" {
		t.Errorf("expected db path from env, got %s", cfg.DB.Path)
	}
	if len(cfg.CORS.AllowOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORS.AllowOrigins)
	}
	if !cfg.Auth.Enabled() || cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("expected auth enabled with 2h ttl, got %+v", cfg.Auth)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"port", "SERVER_PORT", "70000"},
		{"log level", "LOG_LEVEL", "verbose"},
		{"rate limit", "RATE_LIMIT_RPS", "0"},
		{"rate limit burst", "RATE_LIMIT_BURST", "-1"},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_ShortTokenTTL(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_TOKEN_TTL", "30s")

	if _, err := Load(); err == nil {
		t.Error("expected error for short token ttl")
	}
}
