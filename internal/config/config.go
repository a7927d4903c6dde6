package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Telegram  TelegramConfig
	Messenger MessengerConfig
	Sozdik    SozdikConfig
	Mixpanel  MixpanelConfig
	Redis     RedisConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port int
	// PublicURL is the externally reachable base URL used to register the
	// Telegram webhook. Empty disables registration.
	PublicURL string
}

type TelegramConfig struct {
	BotToken string
}

type MessengerConfig struct {
	PageAccessToken    string
	WebhookVerifyToken string
}

type SozdikConfig struct {
	TelegramAPIKey string
	FacebookAPIKey string
}

type MixpanelConfig struct {
	Token string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sharedSozdikKey := getEnv("SOZDIK_API_KEY", "")

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvInt("PORT", 8080),
			PublicURL: getEnv("PUBLIC_URL", ""),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Messenger: MessengerConfig{
			PageAccessToken:    getEnv("FB_PAGE_ACCESS_TOKEN", ""),
			WebhookVerifyToken: getEnv("FB_WEBHOOK_VERIFY_TOKEN", ""),
		},
		Sozdik: SozdikConfig{
			TelegramAPIKey: getEnv("SOZDIK_TELEGRAM_API_KEY", sharedSozdikKey),
			FacebookAPIKey: getEnv("SOZDIK_FACEBOOK_API_KEY", sharedSozdikKey),
		},
		Mixpanel: MixpanelConfig{
			Token: getEnv("MIXPANEL_TOKEN", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Messenger.PageAccessToken == "" {
		return fmt.Errorf("FB_PAGE_ACCESS_TOKEN is required")
	}
	if c.Messenger.WebhookVerifyToken == "" {
		return fmt.Errorf("FB_WEBHOOK_VERIFY_TOKEN is required")
	}
	if c.Mixpanel.Token == "" {
		return fmt.Errorf("MIXPANEL_TOKEN is required")
	}
	if c.Sozdik.TelegramAPIKey == "" || c.Sozdik.FacebookAPIKey == "" {
		return fmt.Errorf("SOZDIK_API_KEY (or the per-platform variants) is required")
	}
	return nil
}

// CacheEnabled reports whether the optional translation cache should be
// wired in.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
