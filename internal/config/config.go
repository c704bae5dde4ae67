// Package config loads the monitor configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/seattle-home-game/internal/feed"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
)

// Environment variables overriding secrets from the file.
const (
	TokenEnv         = "HOME_ASSISTANT_TOKEN"
	TelegramTokenEnv = "TELEGRAM_BOT_TOKEN"
)

// Configuration validation errors.
var (
	ErrInvalidFeedURL      = errors.New("feed.url must be an http or https URL")
	ErrInvalidTimeout      = errors.New("feed.timeout must be positive")
	ErrInvalidSchedule     = errors.New("schedule must be a valid cron spec")
	ErrInvalidTimezone     = errors.New("timezone must be a valid IANA zone name")
	ErrMissingListen       = errors.New("server.listen is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingEntryID      = errors.New("entry_id is required")
	ErrMissingEntityPrefix = errors.New("home_assistant.entity_prefix is required")
	ErrMissingHAURL        = errors.New("home_assistant.url is required when enabled")
	ErrMissingHAToken      = errors.New("home_assistant.token is required when enabled")
	ErrMissingBotToken     = errors.New("telegram.bot_token is required when enabled")
	ErrMissingChatID       = errors.New("telegram.chat_id is required when enabled")
)

// Config represents the complete monitor configuration.
type Config struct {
	Feed          FeedConfig          `yaml:"feed"`
	Schedule      string              `yaml:"schedule"`
	Timezone      string              `yaml:"timezone"`
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	EntryID       string              `yaml:"entry_id"`
	HomeAssistant HomeAssistantConfig `yaml:"home_assistant"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	DryRun        bool                `yaml:"dry_run"`
}

// FeedConfig defines where and how the feed is fetched.
type FeedConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HomeAssistantConfig defines the Home Assistant REST sink.
type HomeAssistantConfig struct {
	Enabled      bool          `yaml:"enabled"`
	URL          string        `yaml:"url"`
	Token        string        `yaml:"token"`
	EntityPrefix string        `yaml:"entity_prefix"`
	Timeout      time.Duration `yaml:"timeout"`
}

// TelegramConfig defines the game-day Telegram announcement.
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			URL:     feed.DefaultURL,
			Timeout: feed.Timeout,
		},
		Schedule: "@every 1h",
		Timezone: "America/Los_Angeles",
		Server: ServerConfig{
			Listen: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		EntryID: "seattle_home_game",
		HomeAssistant: HomeAssistantConfig{
			EntityPrefix: "seattle_home_game",
			Timeout:      10 * time.Second,
		},
	}
}

// Load reads configuration from a YAML file layered over DefaultConfig. An
// empty path yields the defaults. Token environment variables are applied
// before validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if token := os.Getenv(TokenEnv); token != "" {
		cfg.HomeAssistant.Token = token
	}
	if token := os.Getenv(TelegramTokenEnv); token != "" {
		cfg.Telegram.BotToken = token
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Normalize trims string fields and fills zero values from the defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()

	c.Feed.URL = strings.TrimSpace(c.Feed.URL)
	if c.Feed.URL == "" {
		c.Feed.URL = d.Feed.URL
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = d.Feed.Timeout
	}
	c.Schedule = strings.TrimSpace(c.Schedule)
	if c.Schedule == "" {
		c.Schedule = d.Schedule
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	c.HomeAssistant.URL = strings.TrimRight(strings.TrimSpace(c.HomeAssistant.URL), "/")
	c.HomeAssistant.Token = strings.TrimSpace(c.HomeAssistant.Token)
	if c.HomeAssistant.Timeout == 0 {
		c.HomeAssistant.Timeout = d.HomeAssistant.Timeout
	}
	c.Telegram.BotToken = strings.TrimSpace(c.Telegram.BotToken)
	c.Telegram.ChatID = strings.TrimSpace(c.Telegram.ChatID)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Feed.URL, "http://") && !strings.HasPrefix(c.Feed.URL, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidFeedURL, c.Feed.URL)
	}
	if c.Feed.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}

	if c.Server.Listen == "" {
		return ErrMissingListen
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return ErrInvalidLogLevel
	}
	if c.EntryID == "" {
		return ErrMissingEntryID
	}
	if c.HomeAssistant.EntityPrefix == "" {
		return ErrMissingEntityPrefix
	}

	if c.HomeAssistant.Enabled {
		if c.HomeAssistant.URL == "" {
			return ErrMissingHAURL
		}
		if c.HomeAssistant.Token == "" {
			return ErrMissingHAToken
		}
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return ErrMissingBotToken
		}
		if c.Telegram.ChatID == "" {
			return ErrMissingChatID
		}
	}

	return nil
}

// Location returns the configured time zone. It assumes Validate passed.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
