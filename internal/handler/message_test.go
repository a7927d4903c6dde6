package handler

import (
	"context"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/adapter"
	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/platform/telegram"
	"github.com/yenbekbay/sozdik-bot/pkg/errors"
)

type sentMessage struct {
	chatID int64
	text   string
	opts   telegram.SendOptions
}

type fakeSender struct {
	mu       sync.Mutex
	messages []sentMessage
	actions  []string
}

func (f *fakeSender) SendMessage(chat *domain.Chat, text string, opts telegram.SendOptions) *tgbotapi.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{chatID: chat.ID, text: text, opts: opts})
	return &tgbotapi.Message{}
}

func (f *fakeSender) SendChatAction(_ *domain.Chat, action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeSender) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.messages...)
}

type fakeTranslationService struct {
	mu           sync.Mutex
	translations []*domain.Translation
	err          error
	queries      []string
}

func (f *fakeTranslationService) GetTranslationsForQuery(_ context.Context, query string) ([]*domain.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.translations, nil
}

func (f *fakeTranslationService) lookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type trackedEvent struct {
	userID     string
	event      string
	properties map[string]any
}

type fakeTracker struct {
	mu     sync.Mutex
	users  []*domain.Profile
	events []trackedEvent
}

func (f *fakeTracker) TrackUser(_ context.Context, profile *domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, profile)
}

func (f *fakeTracker) TrackEvent(_ context.Context, userID, event string, properties map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, trackedEvent{userID: userID, event: event, properties: properties})
}

func (f *fakeTracker) tracked() []trackedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]trackedEvent(nil), f.events...)
}

func newMessage(text string) *domain.Message {
	return &domain.Message{
		Text: text,
		From: &domain.User{ID: "123", FirstName: "Аян"},
		Chat: &domain.Chat{ID: 42, Type: "private"},
	}
}

func newMessageHandler(sender *fakeSender, translator *fakeTranslationService, tracker *fakeTracker) *MessageHandler {
	return NewMessageHandler(sender, translator, tracker, adapter.NewReplyFormatter(), zap.NewNop())
}

func TestMessageHandlerIgnoresEmptyText(t *testing.T) {
	sender := &fakeSender{}
	translator := &fakeTranslationService{}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("   "))

	if len(sender.sent()) != 0 {
		t.Error("empty text must produce no reply")
	}
	if len(tracker.tracked()) != 0 {
		t.Error("empty text must produce no analytics")
	}
}

func TestMessageHandlerHelpCommand(t *testing.T) {
	sender := &fakeSender{}
	translator := &fakeTranslationService{}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("/help"))

	messages := sender.sent()
	if len(messages) != 1 || messages[0].text != constants.HelpText {
		t.Fatalf("expected the fixed help text, got %+v", messages)
	}
	if len(translator.lookups()) != 0 {
		t.Error("commands must not trigger dictionary lookups")
	}

	events := tracker.tracked()
	if len(events) != 1 || events[0].event != constants.EventRequestedHelp || events[0].userID != "123" {
		t.Fatalf("expected a help analytics event, got %+v", events)
	}
}

func TestMessageHandlerStartCommand(t *testing.T) {
	sender := &fakeSender{}
	translator := &fakeTranslationService{}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("/start"))

	messages := sender.sent()
	if len(messages) != 1 || messages[0].text != constants.StartText {
		t.Fatalf("expected the fixed start text, got %+v", messages)
	}
	if !messages[0].opts.DisableWebPagePreview || messages[0].opts.ParseMode != tgbotapi.ModeMarkdown {
		t.Errorf("start reply must be markdown without a preview, got %+v", messages[0].opts)
	}
}

func TestMessageHandlerTranslates(t *testing.T) {
	translations := []*domain.Translation{
		{
			Query: "машина", Text: "автомобиль",
			FromLang: domain.LanguageKazakh, ToLang: domain.LanguageRussian,
			URL: "https://sozdik.kz/x/1", Title: `*"машина" по-русски*`,
		},
		{
			Query: "машина", Text: "көлік",
			FromLang: domain.LanguageRussian, ToLang: domain.LanguageKazakh,
			URL: "https://sozdik.kz/x/2", Title: `*"машина" по-казахски*`,
		},
	}

	sender := &fakeSender{}
	translator := &fakeTranslationService{translations: translations}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("Машина"))

	if lookups := translator.lookups(); len(lookups) != 1 || lookups[0] != "машина" {
		t.Fatalf("expected one lowercased lookup, got %v", lookups)
	}

	messages := sender.sent()
	if len(messages) != 2 {
		t.Fatalf("expected one reply per translation, got %d", len(messages))
	}

	if len(sender.actions) != 1 || sender.actions[0] != "typing" {
		t.Errorf("expected a typing indicator, got %v", sender.actions)
	}

	events := tracker.tracked()
	if len(events) != 1 || events[0].event != constants.EventRequestedTranslations {
		t.Fatalf("expected a translations analytics event, got %+v", events)
	}
	if events[0].properties["kk_translation"] != true || events[0].properties["ru_translation"] != true {
		t.Errorf("event must flag both result languages, got %+v", events[0].properties)
	}
}

func TestMessageHandlerNothingFound(t *testing.T) {
	sender := &fakeSender{}
	translator := &fakeTranslationService{}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("блаблабла"))

	messages := sender.sent()
	if len(messages) != 1 || messages[0].text != constants.NoTranslationsFoundText {
		t.Fatalf("expected the fixed not-found text, got %+v", messages)
	}

	events := tracker.tracked()
	if len(events) != 1 || events[0].properties["kk_translation"] != false {
		t.Fatalf("user presence must still be tracked, got %+v", events)
	}
}

func TestMessageHandlerLookupFailure(t *testing.T) {
	sender := &fakeSender{}
	translator := &fakeTranslationService{
		err: errors.NewServiceError("translate request failed", "sozdik", "translate", nil),
	}
	tracker := &fakeTracker{}
	h := newMessageHandler(sender, translator, tracker)

	h.Handle(context.Background(), newMessage("машина"))

	messages := sender.sent()
	if len(messages) != 1 || messages[0].text != constants.ErrorText {
		t.Fatalf("a lookup failure must produce the fixed error text, got %+v", messages)
	}
}
