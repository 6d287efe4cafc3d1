// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	WhatsApp   WhatsAppConfig   `mapstructure:"whatsapp"`
	Dispatch   DispatchConfig   `mapstructure:"dispatch"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
	Admin      AdminConfig      `mapstructure:"admin"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WhatsAppConfig configures the Graph API client and webhook verification.
type WhatsAppConfig struct {
	GraphBaseURL   string               `mapstructure:"graph_base_url"`
	APIVersion     string               `mapstructure:"api_version"`
	Timeout        int                  `mapstructure:"timeout"`
	RateLimit      float64              `mapstructure:"rate_limit"`
	RateLimitBurst int                  `mapstructure:"rate_limit_burst"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Webhook        WebhookConfig        `mapstructure:"webhook"`
}

type WebhookConfig struct {
	VerifyToken string `mapstructure:"verify_token"`
	AppSecret   string `mapstructure:"app_secret"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

// MaxLanguageLength is the longest template language code a send log row can hold.
const MaxLanguageLength = 16

// DispatchConfig controls the campaign worker pool.
type DispatchConfig struct {
	Workers               int      `mapstructure:"workers"`
	PollIntervalSeconds   int      `mapstructure:"poll_interval_seconds"`
	ClaimTTLSeconds       int      `mapstructure:"claim_ttl_seconds"`
	DefaultDelaySeconds   int      `mapstructure:"default_delay_seconds"`
	MaxContacts           int      `mapstructure:"max_contacts"`
	FallbackLanguages     []string `mapstructure:"fallback_languages"`
	BlockedBackoffSeconds int      `mapstructure:"blocked_backoff_seconds"`
}

func (d DispatchConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalSeconds) * time.Second
}

func (d DispatchConfig) ClaimTTL() time.Duration {
	return time.Duration(d.ClaimTTLSeconds) * time.Second
}

// BlockedBackoff is how long a campaign stays unclaimable after its provider
// breaker opened. It falls back to the poll interval when unset.
func (d DispatchConfig) BlockedBackoff() time.Duration {
	if d.BlockedBackoffSeconds <= 0 {
		return d.PollInterval()
	}
	return time.Duration(d.BlockedBackoffSeconds) * time.Second
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"`
}

type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.migrations_path", "./migrations")
	v.SetDefault("redis.db", 0)
	v.SetDefault("whatsapp.graph_base_url", "https://graph.facebook.com")
	v.SetDefault("whatsapp.api_version", "v21.0")
	v.SetDefault("whatsapp.timeout", 15)
	v.SetDefault("whatsapp.rate_limit", 20)
	v.SetDefault("whatsapp.rate_limit_burst", 20)
	v.SetDefault("whatsapp.circuit_breaker.max_requests", 3)
	v.SetDefault("whatsapp.circuit_breaker.interval", 60)
	v.SetDefault("whatsapp.circuit_breaker.timeout", 30)
	v.SetDefault("whatsapp.circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("whatsapp.circuit_breaker.consecutive_fails", 5)
	v.SetDefault("dispatch.workers", 4)
	v.SetDefault("dispatch.poll_interval_seconds", 5)
	v.SetDefault("dispatch.claim_ttl_seconds", 120)
	v.SetDefault("dispatch.default_delay_seconds", 2)
	v.SetDefault("dispatch.max_contacts", 10000)
	v.SetDefault("dispatch.blocked_backoff_seconds", 30)
	v.SetDefault("dispatch.fallback_languages", []string{"es", "es_MX", "es_ES", "en", "en_US"})
	v.SetDefault("middleware.rate_limit", 100)
	v.SetDefault("middleware.rate_limit_burst", 1000)
	v.SetDefault("middleware.enable_cors", true)
	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("middleware.request_timeout", 30)
	v.SetDefault("whatsapp.webhook.verify_token", "")
	v.SetDefault("whatsapp.webhook.app_secret", "")
	v.SetDefault("admin.api_key", "")
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the dispatch engine cannot run with.
func (c *Config) Validate() error {
	if c.Dispatch.Workers < 1 {
		return fmt.Errorf("invalid config: dispatch.workers must be at least 1")
	}
	if c.Dispatch.PollIntervalSeconds < 1 {
		return fmt.Errorf("invalid config: dispatch.poll_interval_seconds must be at least 1")
	}
	if c.Dispatch.ClaimTTLSeconds <= c.Dispatch.DefaultDelaySeconds {
		return fmt.Errorf("invalid config: dispatch.claim_ttl_seconds must exceed dispatch.default_delay_seconds")
	}
	for _, lang := range c.Dispatch.FallbackLanguages {
		if len(lang) > MaxLanguageLength {
			return fmt.Errorf("invalid config: dispatch.fallback_languages entry %q exceeds %d characters", lang, MaxLanguageLength)
		}
	}
	if c.WhatsApp.Timeout < 1 {
		return fmt.Errorf("invalid config: whatsapp.timeout must be at least 1")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetURL returns the PostgreSQL URL form used by golang-migrate.
func (d *DatabaseConfig) GetURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}
