package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hms")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token TTL 24h, got %s", cfg.TokenTTL)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
	if cfg.JWTSecret == "" {
		t.Error("expected dev fallback JWT secret to be set")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hms")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %d: %v", len(cfg.CORSOrigins), cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "dev without secret is fine",
			cfg:     Config{Env: "development", TokenTTL: time.Hour},
			wantErr: false,
		},
		{
			name:    "production requires secret",
			cfg:     Config{Env: "production", TokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "production rejects short secret",
			cfg:     Config{Env: "production", JWTSecret: "short", TokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "production with real secret",
			cfg:     Config{Env: "production", JWTSecret: "a-long-enough-signing-secret", TokenTTL: time.Hour},
			wantErr: false,
		},
		{
			name:    "zero token ttl rejected",
			cfg:     Config{Env: "development", JWTSecret: "x", TokenTTL: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
