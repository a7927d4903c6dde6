package adapter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

func sampleTranslation() *domain.Translation {
	return &domain.Translation{
		Query:    "словарь",
		Text:     "_сущ._ сөздік",
		FromLang: domain.LanguageRussian,
		ToLang:   domain.LanguageKazakh,
		URL:      "https://sozdik.kz/x/1",
		Title:    `*"словарь" по-казахски*`,
	}
}

func TestFormatChatReplyKeepsMarkdown(t *testing.T) {
	f := NewReplyFormatter()

	got := f.FormatChatReply(sampleTranslation())
	want := "*\"словарь\" по-казахски*:\n_сущ._ сөздік"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatPlainReplyStripsMarkdown(t *testing.T) {
	f := NewReplyFormatter()

	got := f.FormatPlainReply(sampleTranslation())
	want := "\"словарь\" по-казахски:\nсущ. сөздік"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatPlainReplyTruncatesLongText(t *testing.T) {
	f := NewReplyFormatter()

	translation := sampleTranslation()
	translation.Text = strings.Repeat("ә", 500)

	got := f.FormatPlainReply(translation)
	if n := utf8.RuneCountInString(got); n > constants.MessageLimits.PlainTextMaxLength {
		t.Errorf("formatted reply is %d runes, limit is %d", n, constants.MessageLimits.PlainTextMaxLength)
	}
	if !strings.HasSuffix(got, "...\n"+translation.URL) {
		t.Errorf("truncated reply must end with the omission marker, got %q", got)
	}
}

func TestFormatSuggestionIDIsContentHash(t *testing.T) {
	f := NewReplyFormatter()

	first := f.FormatSuggestion(sampleTranslation())
	second := f.FormatSuggestion(sampleTranslation())
	if first.ID != second.ID {
		t.Error("suggestion ids must be stable for identical content")
	}

	other := sampleTranslation()
	other.Text = "басқа"
	if f.FormatSuggestion(other).ID == first.ID {
		t.Error("different content must produce different suggestion ids")
	}
}

func TestFormatSuggestionShape(t *testing.T) {
	f := NewReplyFormatter()

	suggestion := f.FormatSuggestion(sampleTranslation())
	if suggestion.Title != `"словарь" по-казахски` {
		t.Errorf("unexpected title: %q", suggestion.Title)
	}
	if suggestion.Description != "сущ. сөздік" {
		t.Errorf("unexpected description: %q", suggestion.Description)
	}
	if !strings.Contains(suggestion.MessageText, "_сущ._") {
		t.Errorf("message content must keep markdown, got %q", suggestion.MessageText)
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*bold* and _italic_", "bold and italic"},
		{"[машина](https://sozdik.kz/x/1)", "машина"},
		{`[сөз](https://sozdik.kz/x/2 "сөз")`, "сөз"},
		{"plain", "plain"},
		{"`code`", "code"},
	}

	for _, tt := range tests {
		if got := StripMarkdown(tt.in); got != tt.want {
			t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
