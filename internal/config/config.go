package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	JWT          JWTConfig          `yaml:"jwt"`
	Log          LogConfig          `yaml:"log"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	CORS         CORSConfig         `yaml:"cors"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// JWTConfig holds signing secrets and lifetimes for both token kinds.
// Access and refresh tokens are signed with different secrets so that one
// can never be replayed as the other.
type JWTConfig struct {
	AccessSecret     string        `yaml:"access_secret"`
	AccessExpire     time.Duration `yaml:"access_expire"`
	RefreshSecret    string        `yaml:"refresh_secret"`
	RefreshExpire    time.Duration `yaml:"refresh_expire"`
	Issuer           string        `yaml:"issuer"`
	RevokeAllOnReuse bool          `yaml:"revoke_all_on_reuse"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type RateLimitConfig struct {
	AuthRPS   float64 `yaml:"auth_rps"`
	AuthBurst int     `yaml:"auth_burst"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// HousekeepingConfig drives the periodic purge of expired refresh tokens and
// old audit rows. An empty schedule disables the job.
type HousekeepingConfig struct {
	Schedule           string `yaml:"schedule"`
	AuditRetentionDays int    `yaml:"audit_retention_days"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		// Unmarshal over the defaults so a partial file keeps sane values.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "3000",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "postboard.db",
		},
		JWT: JWTConfig{
			AccessSecret:     "postboard-access-secret-change-in-production",
			AccessExpire:     15 * time.Minute,
			RefreshSecret:    "postboard-refresh-secret-change-in-production",
			RefreshExpire:    7 * 24 * time.Hour,
			Issuer:           "postboard",
			RevokeAllOnReuse: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   5,
			AuthBurst: 10,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Housekeeping: HousekeepingConfig{
			Schedule:           "@every 1h",
			AuditRetentionDays: 30,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("ACCESS_TOKEN_SECRET"); secret != "" {
		c.JWT.AccessSecret = secret
	}
	if d, ok := envDuration("ACCESS_TOKEN_EXPIRES"); ok {
		c.JWT.AccessExpire = d
	}
	if secret := os.Getenv("REFRESH_TOKEN_SECRET"); secret != "" {
		c.JWT.RefreshSecret = secret
	}
	if d, ok := envDuration("REFRESH_TOKEN_EXPIRES"); ok {
		c.JWT.RefreshExpire = d
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		c.JWT.Issuer = issuer
	}
	if v := os.Getenv("JWT_REVOKE_ALL_ON_REUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.JWT.RevokeAllOnReuse = b
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		c.CORS.AllowOrigins = splitList(origins)
	}
	if schedule, ok := os.LookupEnv("HOUSEKEEPING_SCHEDULE"); ok {
		c.Housekeeping.Schedule = schedule
	}
}

// envDuration reads a duration such as "15m" or "4s". A bare integer is
// taken as seconds.
func envDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
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
