package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the market alert engine.
type Config struct {
	// Provider settings
	YahooBaseURL string        `mapstructure:"yahoo_base_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// Delivery channel (optional; alerts are logged only when unset)
	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	TelegramChatID   int64  `mapstructure:"telegram_chat_id"`

	// HTTP API
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Logging
	LogLevel    string `mapstructure:"log_level"`
	LogEncoding string `mapstructure:"log_encoding"`

	// Workflow defaults
	DefaultDropPercent float64 `mapstructure:"default_drop_percent"`
	MaxCompareSymbols  int     `mapstructure:"max_compare_symbols"`
	CompareRange       string  `mapstructure:"compare_range"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - YAHOO_BASE_URL (optional, defaults to production)
//   - FETCH_TIMEOUT (optional, e.g. "10s")
//   - TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID (optional)
//   - API_HOST / API_PORT (optional)
//   - LOG_LEVEL / LOG_ENCODING (optional)
//   - DEFAULT_DROP_PERCENT / MAX_COMPARE_SYMBOLS / COMPARE_RANGE (optional)
func Load(path string) (*Config, error) {
	// Populate the environment from a local .env if one exists.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("fetch_timeout", "10s")
	v.SetDefault("api_host", "0.0.0.0")
	v.SetDefault("api_port", 8001)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_encoding", "console")
	v.SetDefault("default_drop_percent", 5.0)
	v.SetDefault("max_compare_symbols", 5)
	v.SetDefault("compare_range", "1y")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.marketalert")

		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	v.BindEnv("yahoo_base_url", "YAHOO_BASE_URL")
	v.BindEnv("fetch_timeout", "FETCH_TIMEOUT")
	v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("api_host", "API_HOST")
	v.BindEnv("api_port", "API_PORT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_encoding", "LOG_ENCODING")
	v.BindEnv("default_drop_percent", "DEFAULT_DROP_PERCENT")
	v.BindEnv("max_compare_symbols", "MAX_COMPARE_SYMBOLS")
	v.BindEnv("compare_range", "COMPARE_RANGE")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.YahooBaseURL == "" {
		return nil, fmt.Errorf("yahoo_base_url must not be empty")
	}
	if config.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch_timeout must be positive")
	}
	if config.DefaultDropPercent <= 0 {
		return nil, fmt.Errorf("default_drop_percent must be positive")
	}
	if config.MaxCompareSymbols < 1 {
		return nil, fmt.Errorf("max_compare_symbols must be at least 1")
	}
	if config.TelegramBotToken != "" && config.TelegramChatID == 0 {
		return nil, fmt.Errorf("telegram_chat_id is required when telegram_bot_token is set")
	}

	return config, nil
}
