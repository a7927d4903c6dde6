package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/handler"
	"github.com/yenbekbay/sozdik-bot/internal/platform/messenger"
	"github.com/yenbekbay/sozdik-bot/internal/platform/telegram"
)

// Config carries the webhook verification secrets.
type Config struct {
	Port int
	// TelegramWebhookToken is embedded in the webhook path so only
	// Telegram can reach the update endpoint.
	TelegramWebhookToken string
	MessengerVerifyToken string
}

// Server terminates the platform webhooks and hands normalized updates to
// the handlers. Update processing is asynchronous: the webhook always
// acknowledges with 200 once the payload parses.
type Server struct {
	cfg              Config
	engine           *gin.Engine
	httpServer       *http.Server
	messageHandler   *handler.MessageHandler
	inlineHandler    *handler.InlineQueryHandler
	messengerHandler *handler.MessengerHandler
	logger           *zap.Logger
}

func New(
	cfg Config,
	messageHandler *handler.MessageHandler,
	inlineHandler *handler.InlineQueryHandler,
	messengerHandler *handler.MessengerHandler,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:              cfg,
		engine:           engine,
		messageHandler:   messageHandler,
		inlineHandler:    inlineHandler,
		messengerHandler: messengerHandler,
		logger:           logger,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.POST("/telegram/:token", s.handleTelegramUpdate)

	s.engine.GET("/messenger/webhook", s.verifyMessengerWebhook)
	s.engine.POST("/messenger/webhook", s.handleMessengerUpdate)
}

func (s *Server) handleTelegramUpdate(c *gin.Context) {
	if c.Param("token") != s.cfg.TelegramWebhookToken {
		c.Status(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warn("Failed to parse Telegram update", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	switch {
	case update.Message != nil:
		msg := &domain.Message{
			Text: update.Message.Text,
			From: telegram.UserFromAPI(update.Message.From),
			Chat: telegram.ChatFromAPI(update.Message.Chat),
		}
		go s.messageHandler.Handle(context.Background(), msg)
	case update.InlineQuery != nil:
		query := &domain.InlineQuery{
			ID:    update.InlineQuery.ID,
			From:  telegram.UserFromAPI(update.InlineQuery.From),
			Query: update.InlineQuery.Query,
		}
		go s.inlineHandler.Handle(context.Background(), query)
	}

	c.Status(http.StatusOK)
}

func (s *Server) verifyMessengerWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == s.cfg.MessengerVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	c.Status(http.StatusForbidden)
}

func (s *Server) handleMessengerUpdate(c *gin.Context) {
	var update messenger.WebhookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warn("Failed to parse Messenger update", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if update.Object == "page" {
		for _, entry := range update.Entry {
			for _, messaging := range entry.Messaging {
				if messaging.Message == nil {
					continue
				}
				event := &domain.MessengerEvent{
					RecipientID: messaging.Sender.ID,
					Text:        messaging.Message.Text,
				}
				go s.messengerHandler.Handle(context.Background(), event)
			}
		}
	}

	c.Status(http.StatusOK)
}

// Start serves webhooks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Webhook server listening", zap.Int("port", s.cfg.Port))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
