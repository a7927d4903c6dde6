package handler

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/adapter"
	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

// MessengerHandler runs the translation pipeline for Messenger messages.
// Replies are plain text, truncated to the platform limit; the sender's
// profile is fetched lazily and only feeds analytics.
type MessengerHandler struct {
	platform   MessengerPlatform
	translator TranslationService
	tracker    EventTracker
	formatter  *adapter.ReplyFormatter
	logger     *zap.Logger
}

func NewMessengerHandler(
	platform MessengerPlatform,
	translator TranslationService,
	tracker EventTracker,
	formatter *adapter.ReplyFormatter,
	logger *zap.Logger,
) *MessengerHandler {
	return &MessengerHandler{
		platform:   platform,
		translator: translator,
		tracker:    tracker,
		formatter:  formatter,
		logger:     logger,
	}
}

func (h *MessengerHandler) Handle(ctx context.Context, event *domain.MessengerEvent) {
	if event == nil || strings.TrimSpace(event.Text) == "" {
		return
	}

	if err := h.handle(ctx, event); err != nil {
		h.logger.Error("Failed to reply to a message",
			zap.String("recipient_id", event.RecipientID),
			zap.Error(err),
		)
		h.platform.SendTextMessage(ctx, event.RecipientID, constants.ErrorText)
	}
}

func (h *MessengerHandler) handle(ctx context.Context, event *domain.MessengerEvent) error {
	query := strings.ToLower(event.Text)

	var (
		profile      *domain.Profile
		translations []*domain.Translation
		lookupErr    error
	)

	// Profile fetch, typing indicator, and lookup are independent; only
	// the lookup outcome matters.
	var wg conc.WaitGroup
	wg.Go(func() {
		profile = h.platform.GetUserProfile(ctx, event.RecipientID)
	})
	wg.Go(func() {
		translations, lookupErr = h.translator.GetTranslationsForQuery(ctx, query)
	})
	wg.Go(func() {
		h.platform.SendSenderAction(ctx, event.RecipientID, "typing_on")
	})
	wg.Wait()

	if lookupErr != nil {
		return lookupErr
	}

	if profile == nil {
		profile = &domain.Profile{ID: event.RecipientID}
	}

	h.logger.Info("Translating query for user",
		zap.String("query", query),
		zap.String("user_id", profile.ID),
		zap.String("first_name", profile.FirstName),
		zap.String("last_name", profile.LastName),
	)

	var tracking conc.WaitGroup
	tracking.Go(func() {
		h.tracker.TrackUser(ctx, profile)
	})
	tracking.Go(func() {
		h.tracker.TrackEvent(ctx, event.RecipientID, constants.EventRequestedTranslations, map[string]any{
			"query":          event.Text,
			"kk_translation": domain.HasTranslationTo(translations, domain.LanguageKazakh),
			"ru_translation": domain.HasTranslationTo(translations, domain.LanguageRussian),
		})
	})
	tracking.Wait()

	if len(translations) == 0 {
		h.platform.SendTextMessage(ctx, event.RecipientID, constants.NoTranslationsFoundText)
		return nil
	}

	var sends conc.WaitGroup
	for _, translation := range translations {
		translation := translation
		sends.Go(func() {
			h.platform.SendTextMessage(ctx, event.RecipientID, h.formatter.FormatPlainReply(translation))
		})
	}
	sends.Wait()

	return nil
}
