// Package config provides configuration management for the trading application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Trading       TradingConfig      `mapstructure:"trading"`
	Feed          FeedConfig         `mapstructure:"feed"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	UI            UIConfig           `mapstructure:"ui"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// TradingConfig holds ledger-related configuration.
type TradingConfig struct {
	InitialFiat         float64 `mapstructure:"initial_fiat"`
	InitialTokens       float64 `mapstructure:"initial_tokens"`
	InitialVirtual      float64 `mapstructure:"initial_virtual"`
	DailyRewardTokens   float64 `mapstructure:"daily_reward_tokens"`
	TokenConversionRate float64 `mapstructure:"token_conversion_rate"`
}

// FeedConfig holds price feed configuration.
type FeedConfig struct {
	// URL of the broadcast WebSocket server. Empty means simulate locally.
	URL string `mapstructure:"url"`
	// Interval between simulated tick cycles.
	Interval time.Duration `mapstructure:"interval"`
	// ReconnectBaseDelay and ReconnectMaxDelay bound the backoff curve.
	ReconnectBaseDelay time.Duration `mapstructure:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `mapstructure:"reconnect_max_delay"`
}

// NotificationConfig holds notification configuration.
type NotificationConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Level   string        `mapstructure:"level"` // all, alerts_only, errors_only
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig holds webhook notification configuration.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	TimeFormat   string `mapstructure:"time_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/nfino-trader"
	}
	return filepath.Join(home, ".config", "nfino-trader")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			DailyRewardTokens:   10,
			TokenConversionRate: 1000,
		},
		Feed: FeedConfig{
			Interval:           time.Second,
			ReconnectBaseDelay: time.Second,
			ReconnectMaxDelay:  30 * time.Second,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Level:   "all",
		},
		UI: UIConfig{
			ColorEnabled: true,
			TimeFormat:   "15:04:05",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: false,
			File:    true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is not an error: a template is written and defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("trading.daily_reward_tokens", cfg.Trading.DailyRewardTokens)
	v.SetDefault("trading.token_conversion_rate", cfg.Trading.TokenConversionRate)
	v.SetDefault("feed.interval", cfg.Feed.Interval)
	v.SetDefault("feed.reconnect_base_delay", cfg.Feed.ReconnectBaseDelay)
	v.SetDefault("feed.reconnect_max_delay", cfg.Feed.ReconnectMaxDelay)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.level", cfg.Notifications.Level)
	v.SetDefault("ui.color_enabled", cfg.UI.ColorEnabled)
	v.SetDefault("ui.time_format", cfg.UI.TimeFormat)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NFINO_FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("NFINO_WEBHOOK_URL"); v != "" {
		cfg.Notifications.Webhook.URL = v
		cfg.Notifications.Webhook.Enabled = true
	}
	if v := os.Getenv("NFINO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Trading.InitialFiat < 0 || c.Trading.InitialTokens < 0 || c.Trading.InitialVirtual < 0 {
		return fmt.Errorf("initial balances must be non-negative")
	}
	if c.Trading.TokenConversionRate <= 0 {
		return fmt.Errorf("token_conversion_rate must be positive")
	}
	if c.Trading.DailyRewardTokens <= 0 {
		return fmt.Errorf("daily_reward_tokens must be positive")
	}
	if c.Feed.Interval <= 0 {
		return fmt.Errorf("feed interval must be positive")
	}
	switch c.Notifications.Level {
	case "", "all", "alerts_only", "errors_only":
	default:
		return fmt.Errorf("invalid notification level: %s", c.Notifications.Level)
	}
	return nil
}
