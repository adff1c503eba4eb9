package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "3000" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "3000")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.JWT.AccessExpire != 15*time.Minute {
		t.Errorf("JWT.AccessExpire = %v, expected %v", cfg.JWT.AccessExpire, 15*time.Minute)
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		t.Error("access and refresh secrets should differ by default")
	}
	if !cfg.JWT.RevokeAllOnReuse {
		t.Error("RevokeAllOnReuse should default to true")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, expected %q", cfg.Server.Host, "0.0.0.0")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
jwt:
  access_expire: 30s
  refresh_expire: 48h
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, expected default %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.JWT.AccessExpire != 30*time.Second {
		t.Errorf("JWT.AccessExpire = %v, expected %v", cfg.JWT.AccessExpire, 30*time.Second)
	}
	if cfg.JWT.RefreshExpire != 48*time.Hour {
		t.Errorf("JWT.RefreshExpire = %v, expected %v", cfg.JWT.RefreshExpire, 48*time.Hour)
	}
	if cfg.JWT.Issuer != "postboard" {
		t.Errorf("JWT.Issuer = %q, expected default %q", cfg.JWT.Issuer, "postboard")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid yaml")
	}
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost dbname=postboard")
	t.Setenv("ACCESS_TOKEN_SECRET", "a-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRES", "4s")
	t.Setenv("REFRESH_TOKEN_SECRET", "r-secret")
	t.Setenv("REFRESH_TOKEN_EXPIRES", "3600")
	t.Setenv("JWT_REVOKE_ALL_ON_REUSE", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HOUSEKEEPING_SCHEDULE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "8081")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	if cfg.JWT.AccessSecret != "a-secret" || cfg.JWT.RefreshSecret != "r-secret" {
		t.Errorf("secrets not overridden: %q / %q", cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
	}
	if cfg.JWT.AccessExpire != 4*time.Second {
		t.Errorf("JWT.AccessExpire = %v, expected %v", cfg.JWT.AccessExpire, 4*time.Second)
	}
	if cfg.JWT.RefreshExpire != time.Hour {
		t.Errorf("JWT.RefreshExpire = %v, expected %v", cfg.JWT.RefreshExpire, time.Hour)
	}
	if cfg.JWT.RevokeAllOnReuse {
		t.Error("RevokeAllOnReuse should be false")
	}
	if len(cfg.CORS.AllowOrigins) != 2 || cfg.CORS.AllowOrigins[1] != "https://b.example" {
		t.Errorf("CORS.AllowOrigins = %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Housekeeping.Schedule != "" {
		t.Errorf("Housekeeping.Schedule = %q, expected empty", cfg.Housekeeping.Schedule)
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRES", "soon")

	if _, ok := envDuration("ACCESS_TOKEN_EXPIRES"); ok {
		t.Error("envDuration should reject unparsable values")
	}
}
