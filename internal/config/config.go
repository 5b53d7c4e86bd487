package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xxxsen/common/logger"
)

const (
	defaultTokenTTLMinutes = 60
	defaultCookieName      = "authToken"
	defaultPostsPerPage    = 16
	defaultRateLimitMs     = 500
	defaultRateLimitKeys   = 10000
	defaultStatsCron       = "*/5 * * * *"
)

type Config struct {
	Database        DatabaseConfig   `json:"database"`
	JWTSecret       string           `json:"jwt_secret"`
	Port            int              `json:"port"`
	TokenTTLMinutes int              `json:"token_ttl_minutes"`
	Cookie          CookieConfig     `json:"cookie"`
	PostsPerPage    int              `json:"posts_per_page"`
	RateLimit       RateLimitConfig  `json:"rate_limit"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	Jobs            JobsConfig       `json:"jobs"`
	LogConfig       logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type CookieConfig struct {
	Name     string `json:"name"`
	Insecure bool   `json:"insecure"`
}

type RateLimitConfig struct {
	WindowMs int `json:"window_ms"`
	MaxKeys  int `json:"max_keys"`
}

type JobsConfig struct {
	// nil selects the default schedule, "" disables the job.
	StatsCron *string `json:"stats_cron"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

func (j *JobsConfig) StatsSpec() string {
	if j.StatsCron == nil {
		return defaultStatsCron
	}
	return *j.StatsCron
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("database.dsn or database.host is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if c.TokenTTLMinutes <= 0 {
		c.TokenTTLMinutes = defaultTokenTTLMinutes
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = defaultCookieName
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = defaultPostsPerPage
	}
	if c.RateLimit.WindowMs == 0 {
		c.RateLimit.WindowMs = defaultRateLimitMs
	}
	if c.RateLimit.MaxKeys <= 0 {
		c.RateLimit.MaxKeys = defaultRateLimitKeys
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	return nil
}
