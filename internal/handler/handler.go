package handler

import (
	"context"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/platform/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TranslationService aggregates dictionary lookups across language-pair
// directions.
type TranslationService interface {
	GetTranslationsForQuery(ctx context.Context, query string) ([]*domain.Translation, error)
}

// EventTracker is the best-effort analytics side-channel. Implementations
// never fail: errors are swallowed and logged inside.
type EventTracker interface {
	TrackUser(ctx context.Context, profile *domain.Profile)
	TrackEvent(ctx context.Context, userID, event string, properties map[string]any)
}

// ChatSender delivers outbound Telegram traffic. Send failures degrade to
// nil results at the platform layer.
type ChatSender interface {
	SendMessage(chat *domain.Chat, text string, opts telegram.SendOptions) *tgbotapi.Message
	SendChatAction(chat *domain.Chat, action string)
}

// InlineAnswerer submits suggestion lists for inline queries.
type InlineAnswerer interface {
	AnswerInlineQuery(queryID string, suggestions []*domain.InlineSuggestion)
}

// MessengerPlatform delivers outbound Messenger traffic and resolves user
// profiles. All operations are best-effort.
type MessengerPlatform interface {
	SendTextMessage(ctx context.Context, recipientID, text string) *domain.MessengerEvent
	SendSenderAction(ctx context.Context, recipientID, action string)
	GetUserProfile(ctx context.Context, userID string) *domain.Profile
}
