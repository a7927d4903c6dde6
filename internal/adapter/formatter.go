package adapter

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/util"
)

// ReplyFormatter turns translation records into platform-ready display
// text. All methods are pure.
type ReplyFormatter struct{}

func NewReplyFormatter() *ReplyFormatter {
	return &ReplyFormatter{}
}

// FormatChatReply renders a translation for a markdown-capable chat
// surface.
func (f *ReplyFormatter) FormatChatReply(translation *domain.Translation) string {
	return fmt.Sprintf("%s:\n%s", translation.Title, translation.Text)
}

// FormatPlainReply renders a translation for a plain-text surface,
// truncated so the string never exceeds the platform limit. The omission
// marker carries the canonical URL so the full entry stays reachable.
func (f *ReplyFormatter) FormatPlainReply(translation *domain.Translation) string {
	plain := StripMarkdown(f.FormatChatReply(translation))
	return util.Truncate(
		plain,
		constants.MessageLimits.PlainTextMaxLength,
		"...\n"+translation.URL,
	)
}

// FormatSuggestion builds an inline suggestion entry for a translation.
// The id is a content hash of the body so the platform can dedup
// resubmissions of the same result.
func (f *ReplyFormatter) FormatSuggestion(translation *domain.Translation) *domain.InlineSuggestion {
	sum := md5.Sum([]byte(translation.Text))

	return &domain.InlineSuggestion{
		ID:          hex.EncodeToString(sum[:]),
		Title:       StripMarkdown(translation.Title),
		Description: StripMarkdown(translation.Text),
		MessageText: f.FormatChatReply(translation),
	}
}
