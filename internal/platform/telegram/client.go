package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

// SendOptions controls how a chat message is rendered.
type SendOptions struct {
	ParseMode             string
	DisableWebPagePreview bool
}

// MarkdownNoPreview is the option set used for every markdown reply the
// bot sends.
var MarkdownNoPreview = SendOptions{
	ParseMode:             tgbotapi.ModeMarkdown,
	DisableWebPagePreview: true,
}

// Client wraps the Telegram Bot API. Send failures are logged here and
// degrade to a nil result; callers continue without the data.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewClient(token string, logger *zap.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Client{
		api:    api,
		logger: logger,
	}, nil
}

func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendMessage delivers a text message to a chat. Returns nil when the
// platform rejects the send.
func (c *Client) SendMessage(chat *domain.Chat, text string, opts SendOptions) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(chat.ID, text)
	msg.ParseMode = opts.ParseMode
	msg.DisableWebPagePreview = opts.DisableWebPagePreview

	sent, err := c.api.Send(msg)
	if err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chat.ID),
			zap.Error(err),
		)
		return nil
	}

	return &sent
}

// SendChatAction shows a chat action such as "typing". Best-effort.
func (c *Client) SendChatAction(chat *domain.Chat, action string) {
	if _, err := c.api.Request(tgbotapi.NewChatAction(chat.ID, action)); err != nil {
		c.logger.Error("Failed to send chat action",
			zap.Int64("chat_id", chat.ID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// AnswerInlineQuery submits the suggestion list for an inline query.
func (c *Client) AnswerInlineQuery(queryID string, suggestions []*domain.InlineSuggestion) {
	results := make([]interface{}, 0, len(suggestions))
	for _, suggestion := range suggestions {
		article := tgbotapi.NewInlineQueryResultArticleMarkdown(
			suggestion.ID,
			suggestion.Title,
			suggestion.MessageText,
		)
		article.Description = suggestion.Description
		results = append(results, article)
	}

	if _, err := c.api.Request(tgbotapi.InlineConfig{
		InlineQueryID: queryID,
		Results:       results,
	}); err != nil {
		c.logger.Error("Failed to answer inline query",
			zap.String("query_id", queryID),
			zap.Error(err),
		)
	}
}

// SetWebhook registers the webhook URL with Telegram.
func (c *Client) SetWebhook(webhookURL string) error {
	webhook, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return err
	}

	if _, err := c.api.Request(webhook); err != nil {
		return err
	}

	c.logger.Info("Telegram webhook registered", zap.String("url", webhookURL))
	return nil
}

// UserFromAPI normalizes a Telegram user.
func UserFromAPI(user *tgbotapi.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        strconv.FormatInt(user.ID, 10),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ChatFromAPI normalizes a Telegram chat.
func ChatFromAPI(chat *tgbotapi.Chat) *domain.Chat {
	if chat == nil {
		return nil
	}
	return &domain.Chat{
		ID:        chat.ID,
		Type:      chat.Type,
		Title:     chat.Title,
		Username:  chat.UserName,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
	}
}
