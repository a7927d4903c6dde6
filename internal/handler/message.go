package handler

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/adapter"
	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/platform/telegram"
)

// MessageHandler runs the per-message pipeline for Telegram chat messages:
// command dispatch, dictionary lookup, reply delivery, and the single
// catch boundary that turns any downstream failure into the generic error
// reply.
type MessageHandler struct {
	sender     ChatSender
	translator TranslationService
	tracker    EventTracker
	formatter  *adapter.ReplyFormatter
	logger     *zap.Logger
}

func NewMessageHandler(
	sender ChatSender,
	translator TranslationService,
	tracker EventTracker,
	formatter *adapter.ReplyFormatter,
	logger *zap.Logger,
) *MessageHandler {
	return &MessageHandler{
		sender:     sender,
		translator: translator,
		tracker:    tracker,
		formatter:  formatter,
		logger:     logger,
	}
}

// Handle processes one inbound message. It never fails outward: every
// error inside the pipeline is logged and answered with the fixed error
// text. The only silent outcome is the empty-text eligibility guard.
func (h *MessageHandler) Handle(ctx context.Context, msg *domain.Message) {
	if msg == nil || msg.Chat == nil || strings.TrimSpace(msg.Text) == "" {
		return
	}

	if err := h.handle(ctx, msg); err != nil {
		h.logger.Error("Failed to reply to a message",
			zap.Any("chat", msg.Chat),
			zap.Error(err),
		)
		h.sender.SendMessage(msg.Chat, constants.ErrorText, telegram.SendOptions{})
	}
}

func (h *MessageHandler) handle(ctx context.Context, msg *domain.Message) error {
	switch msg.Text {
	case constants.StartCommand:
		h.logger.Info("Sending the start message", zap.Any("chat", msg.Chat))
		h.sendWithTracking(ctx, msg, constants.StartText, constants.EventRequestedStart)
		return nil
	case constants.HelpCommand:
		h.logger.Info("Sending the help message", zap.Any("chat", msg.Chat))
		h.sendWithTracking(ctx, msg, constants.HelpText, constants.EventRequestedHelp)
		return nil
	default:
		return h.translate(ctx, msg)
	}
}

// sendWithTracking delivers a fixed command reply while the analytics
// side-channel runs alongside.
func (h *MessageHandler) sendWithTracking(ctx context.Context, msg *domain.Message, text, event string) {
	var wg conc.WaitGroup
	wg.Go(func() {
		h.sender.SendMessage(msg.Chat, text, telegram.MarkdownNoPreview)
	})
	if msg.From != nil {
		wg.Go(func() {
			h.tracker.TrackUser(ctx, msg.From.Profile())
		})
		wg.Go(func() {
			h.tracker.TrackEvent(ctx, msg.From.ID, event, nil)
		})
	}
	wg.Wait()
}

func (h *MessageHandler) translate(ctx context.Context, msg *domain.Message) error {
	query := strings.ToLower(msg.Text)

	h.logger.Info("Translating query for chat",
		zap.String("query", query),
		zap.Any("chat", msg.Chat),
	)

	var (
		translations []*domain.Translation
		lookupErr    error
	)

	// The typing indicator runs alongside the lookup; its outcome is
	// irrelevant to the reply.
	var wg conc.WaitGroup
	wg.Go(func() {
		translations, lookupErr = h.translator.GetTranslationsForQuery(ctx, query)
	})
	wg.Go(func() {
		h.sender.SendChatAction(msg.Chat, "typing")
	})
	wg.Wait()

	if lookupErr != nil {
		return lookupErr
	}

	if msg.From != nil {
		var tracking conc.WaitGroup
		tracking.Go(func() {
			h.tracker.TrackUser(ctx, msg.From.Profile())
		})
		tracking.Go(func() {
			h.tracker.TrackEvent(ctx, msg.From.ID, constants.EventRequestedTranslations, map[string]any{
				"query":          msg.Text,
				"kk_translation": domain.HasTranslationTo(translations, domain.LanguageKazakh),
				"ru_translation": domain.HasTranslationTo(translations, domain.LanguageRussian),
			})
		})
		tracking.Wait()
	}

	if len(translations) == 0 {
		h.sender.SendMessage(msg.Chat, constants.NoTranslationsFoundText, telegram.SendOptions{})
		return nil
	}

	// One reply per record, dispatched concurrently; one failed send does
	// not cancel the others.
	var sends conc.WaitGroup
	for _, translation := range translations {
		translation := translation
		sends.Go(func() {
			h.sender.SendMessage(msg.Chat, h.formatter.FormatChatReply(translation), telegram.MarkdownNoPreview)
		})
	}
	sends.Wait()

	return nil
}
