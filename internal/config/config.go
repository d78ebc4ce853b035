// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Storage  StorageConfig  `mapstructure:"storage"`
	API      APIConfig      `mapstructure:"api"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls the control-surface HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// ScheduleConfig governs the daily run trigger.
type ScheduleConfig struct {
	// FireHour is the UTC hour of the daily run (17 UTC = 00:00 WIB).
	FireHour int `mapstructure:"fire_hour"`
	// MaxAttempts bounds the retry loop for one scheduled run.
	MaxAttempts int `mapstructure:"max_attempts"`
	// TickSeconds is how often the scheduler checks whether a run is due.
	TickSeconds int `mapstructure:"tick_seconds"`
}

// ScraperConfig governs fetch behavior inside a pipeline run.
type ScraperConfig struct {
	UserAgent      string  `mapstructure:"user_agent"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	PauseSeconds   int     `mapstructure:"pause_seconds"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
}

// StorageConfig selects and configures the storage provider.
type StorageConfig struct {
	// Provider is one of "api", "postgres", "noop".
	Provider string         `mapstructure:"provider"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig controls the direct-postgres storage provider.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// APIConfig points at the remote storage API.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// TelegramConfig holds notification credentials. Both empty means notifications
// are silently disabled.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// ExportConfig controls the local backup file writers.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BEASISWA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("schedule.fire_hour", 17)
	v.SetDefault("schedule.max_attempts", 1)
	v.SetDefault("schedule.tick_seconds", 30)
	v.SetDefault("scraper.user_agent", "beasiswa-bot/0.1")
	v.SetDefault("scraper.timeout_seconds", 30)
	v.SetDefault("scraper.pause_seconds", 2)
	v.SetDefault("scraper.requests_per_sec", 1.0)
	v.SetDefault("storage.provider", "api")
	v.SetDefault("storage.postgres.max_conns", 4)
	v.SetDefault("api.base_url", "https://scrapingbeasiswaweb.vercel.app")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("export.dir", "data")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Schedule.FireHour < 0 || c.Schedule.FireHour > 23 {
		return fmt.Errorf("schedule.fire_hour must be in [0,23]")
	}
	if c.Schedule.MaxAttempts <= 0 {
		return fmt.Errorf("schedule.max_attempts must be > 0")
	}
	switch c.Storage.Provider {
	case "api":
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url must be set when storage.provider is 'api'")
		}
	case "postgres":
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn must be set when storage.provider is 'postgres'")
		}
	case "noop":
	default:
		return fmt.Errorf("unknown storage provider: %s", c.Storage.Provider)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be > 0")
	}
	if c.Scraper.TimeoutSeconds <= 0 {
		return fmt.Errorf("scraper.timeout_seconds must be > 0")
	}
	return nil
}

// APITimeout converts the remote API timeout into a duration.
func (c Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ScrapeTimeout converts the per-fetch timeout into a duration.
func (c Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

// CategoryPause is the mandatory wait between category runs.
func (c Config) CategoryPause() time.Duration {
	return time.Duration(c.Scraper.PauseSeconds) * time.Second
}
