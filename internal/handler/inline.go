package handler

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/adapter"
	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

// InlineQueryHandler answers search-as-you-type queries with a suggestion
// list. The protocol has no fallback surface, so failures are logged and
// the query is left unanswered.
type InlineQueryHandler struct {
	answerer   InlineAnswerer
	translator TranslationService
	tracker    EventTracker
	formatter  *adapter.ReplyFormatter
	logger     *zap.Logger
}

func NewInlineQueryHandler(
	answerer InlineAnswerer,
	translator TranslationService,
	tracker EventTracker,
	formatter *adapter.ReplyFormatter,
	logger *zap.Logger,
) *InlineQueryHandler {
	return &InlineQueryHandler{
		answerer:   answerer,
		translator: translator,
		tracker:    tracker,
		formatter:  formatter,
		logger:     logger,
	}
}

func (h *InlineQueryHandler) Handle(ctx context.Context, query *domain.InlineQuery) {
	if query == nil || utf8.RuneCountInString(query.Query) < constants.MessageLimits.InlineQueryMinLength {
		return
	}

	if err := h.handle(ctx, query); err != nil {
		h.logger.Error("Failed to answer an inline query",
			zap.Any("from", query.From),
			zap.Error(err),
		)
	}
}

func (h *InlineQueryHandler) handle(ctx context.Context, query *domain.InlineQuery) error {
	translations, err := h.translator.GetTranslationsForQuery(ctx, strings.ToLower(query.Query))
	if err != nil {
		return err
	}

	suggestions := make([]*domain.InlineSuggestion, 0, len(translations))
	for _, translation := range translations {
		suggestions = append(suggestions, h.formatter.FormatSuggestion(translation))
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		h.answerer.AnswerInlineQuery(query.ID, suggestions)
	})
	if query.From != nil {
		wg.Go(func() {
			h.tracker.TrackUser(ctx, query.From.Profile())
		})
		// No event when nothing was found; empty inline queries do not
		// count as usage.
		if len(translations) > 0 {
			wg.Go(func() {
				h.tracker.TrackEvent(ctx, query.From.ID, constants.EventSentInlineQuery, map[string]any{
					"query":          query.Query,
					"kk_translation": domain.HasTranslationTo(translations, domain.LanguageKazakh),
					"ru_translation": domain.HasTranslationTo(translations, domain.LanguageRussian),
				})
			})
		}
	}
	wg.Wait()

	return nil
}
