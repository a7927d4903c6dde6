package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/adapter"
	"github.com/yenbekbay/sozdik-bot/internal/config"
	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/handler"
	"github.com/yenbekbay/sozdik-bot/internal/platform/messenger"
	"github.com/yenbekbay/sozdik-bot/internal/platform/telegram"
	"github.com/yenbekbay/sozdik-bot/internal/server"
	"github.com/yenbekbay/sozdik-bot/internal/service/analytics"
	"github.com/yenbekbay/sozdik-bot/internal/service/cache"
	"github.com/yenbekbay/sozdik-bot/internal/service/sozdik"
)

// Container bundles the assembled services for constructing the webhook
// server.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Telegram *telegram.Client
	Server   *server.Server

	closers []func()
}

// Close releases long-lived resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles the dependency graph: platform clients, per-platform
// dictionary pipelines, the analytics side-channel, and the handlers.
func Build(cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Platform clients
	telegramClient, err := telegram.NewClient(cfg.Telegram.BotToken, logger.Named("telegram"))
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram client: %w", err)
	}
	messengerClient := messenger.NewClient(cfg.Messenger.PageAccessToken, logger.Named("messenger"))

	// Analytics side-channel
	mixpanelClient := analytics.NewClient(cfg.Mixpanel.Token, logger.Named("mixpanel"))
	tracker := analytics.NewTracker(mixpanelClient, logger.Named("analytics"))

	// Optional short-TTL translation cache
	var cacheSvc *cache.Service
	if cfg.CacheEnabled() {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger.Named("cache"))
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	// Per-platform dictionary pipelines. Each platform identity carries
	// its own API key and authentication fingerprint.
	newPipeline := func(clientID, apiKey string) *sozdik.Service {
		log := logger.Named("sozdik-" + clientID)
		var translator sozdik.Translator = sozdik.NewClient(clientID, apiKey, log)
		if cacheSvc != nil {
			translator = sozdik.NewCachedTranslator(translator, cacheSvc, constants.CacheTTL.Translation, log)
		}
		return sozdik.NewService(translator, log)
	}
	telegramSozdik := newPipeline("telegram", cfg.Sozdik.TelegramAPIKey)
	facebookSozdik := newPipeline("facebook", cfg.Sozdik.FacebookAPIKey)

	formatter := adapter.NewReplyFormatter()

	messageHandler := handler.NewMessageHandler(
		telegramClient, telegramSozdik, tracker, formatter, logger.Named("telegram-bot"))
	inlineHandler := handler.NewInlineQueryHandler(
		telegramClient, telegramSozdik, tracker, formatter, logger.Named("telegram-bot"))
	messengerHandler := handler.NewMessengerHandler(
		messengerClient, facebookSozdik, tracker, formatter, logger.Named("messenger-bot"))

	webhookServer := server.New(server.Config{
		Port:                 cfg.Server.Port,
		TelegramWebhookToken: cfg.Telegram.BotToken,
		MessengerVerifyToken: cfg.Messenger.WebhookVerifyToken,
	}, messageHandler, inlineHandler, messengerHandler, logger.Named("server"))

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Telegram: telegramClient,
		Server:   webhookServer,
		closers:  closers,
	}, nil
}
