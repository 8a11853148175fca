package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string         `json:"env" envconfig:"ENV" default:"local"`
	Http     HttpConfig     `json:"http" envconfig:"HTTP"`
	Postgres PostgresConfig `json:"postgres" envconfig:"POSTGRES"`
	Redis    RedisConfig    `json:"redis" envconfig:"REDIS"`
	APIKey   string         `json:"api_key,omitempty" envconfig:"API_KEY"`
	Webhook  WebhookConfig  `json:"webhook" envconfig:"WEBHOOK"`
	Feed     FeedConfig     `json:"feed" envconfig:"FEED"`
	Advisor  AdvisorConfig  `json:"advisor" envconfig:"ADVISOR"`
	Upload   UploadConfig   `json:"upload" envconfig:"UPLOAD"`
	Hub      HubConfig      `json:"hub" envconfig:"HUB"`

	AnthropicAPIKey     string        `json:"-" envconfig:"ANTHROPIC_API_KEY"`
	LocationTTL         time.Duration `json:"location_ttl" envconfig:"LOCATION_TTL" default:"0s"`
	AlertCacheTTL       time.Duration `json:"alert_cache_ttl" envconfig:"ALERT_CACHE_TTL" default:"30s"`
	MaintenanceInterval time.Duration `json:"maintenance_interval" envconfig:"MAINTENANCE_INTERVAL" default:"1m"`
}

type HttpConfig struct {
	Port            string        `json:"port" default:":8080"`
	ReadTimeout     time.Duration `json:"read_timeout" envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    int           `json:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst  int           `json:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"20"`
}

type PostgresConfig struct {
	Host     string `json:"host" default:"pg-local"`
	Port     int    `json:"port" default:"5432"`
	Database string `json:"database" envconfig:"DB" default:"borderwatch"`
	User     string `json:"user" default:"postgres"`
	Password string `json:"password,omitempty" default:"postgres"`
	SSLMode  string `json:"ssl_mode" envconfig:"SSL_MODE" default:"disable"`

	MaxConns        int32         `envconfig:"MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `envconfig:"MAX_CONN_LIFETIME" default:"1h"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

type RedisConfig struct {
	Addr     string `json:"addr" default:"redis-local:6379"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db" envconfig:"DB" default:"0"`

	PoolSize       int           `json:"pool_size" envconfig:"POOL_SIZE" default:"10"`
	ConnectTimeout time.Duration `json:"connect_timeout" envconfig:"CONNECT_TIMEOUT" default:"5s"`
}

type WebhookConfig struct {
	URL      string `json:"url" envconfig:"URL"`
	Disabled bool   `json:"disabled" envconfig:"DISABLED" default:"false"`
}

type FeedConfig struct {
	URL     string        `json:"url" envconfig:"URL"`
	Timeout time.Duration `json:"timeout" envconfig:"TIMEOUT" default:"3s"`
}

type AdvisorConfig struct {
	Model   string        `json:"model" envconfig:"MODEL" default:"claude-haiku-4-5-20251001"`
	Timeout time.Duration `json:"timeout" envconfig:"TIMEOUT" default:"4s"`
}

type UploadConfig struct {
	Dir      string `json:"dir" envconfig:"DIR" default:"./uploads"`
	MaxBytes int64  `json:"max_bytes" envconfig:"MAX_BYTES" default:"10485760"`
}

type HubConfig struct {
	SendBuffer     int      `json:"send_buffer" envconfig:"SEND_BUFFER" default:"64"`
	FanoutLimit    int      `json:"fanout_limit" envconfig:"FANOUT_LIMIT" default:"32"`
	AllowedOrigins []string `json:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("feed_enabled", cfg.Feed.URL != ""),
		slog.Bool("advisor_enabled", cfg.AnthropicAPIKey != ""),
		slog.Bool("webhook_disabled", cfg.Webhook.Disabled))

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}
	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}
	if c.APIKey == "" {
		return errors.New("API_KEY required")
	}
	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		return errors.New("WEBHOOK_URL required unless WEBHOOK_DISABLED=true")
	}
	if c.Http.RateLimitRPS <= 0 || c.Http.RateLimitBurst <= 0 {
		return errors.New("HTTP_RATE_LIMIT_RPS and HTTP_RATE_LIMIT_BURST must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Hub.SendBuffer <= 0 || c.Hub.FanoutLimit <= 0 {
		return errors.New("HUB_SEND_BUFFER and HUB_FANOUT_LIMIT must be positive")
	}
	if c.LocationTTL < 0 {
		return errors.New("LOCATION_TTL must not be negative")
	}
	if c.MaintenanceInterval <= 0 {
		return errors.New("MAINTENANCE_INTERVAL must be positive")
	}
	return nil
}
