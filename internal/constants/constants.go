package constants

import "time"

var SozdikAPIConfig = struct {
	BaseURL       string
	SiteBaseURL   string
	OutputFormat  string
	OutputSamples int
	Strict        int
	APIVersion    string
	ClientVersion string
	UserAgent     string
}{
	BaseURL:       "http://api.sozdik.kz",
	SiteBaseURL:   "https://sozdik.kz/ru",
	OutputFormat:  "json",
	OutputSamples: 1,
	Strict:        0,
	APIVersion:    "1.0",
	ClientVersion: "0.1.0",
	UserAgent:     "sozdik-bot",
}

var MixpanelConfig = struct {
	BaseURL string
}{
	BaseURL: "https://api.mixpanel.com",
}

var MessengerConfig = struct {
	GraphAPIBaseURL string
	ProfileFields   string
}{
	GraphAPIBaseURL: "https://graph.facebook.com/v2.8",
	ProfileFields:   "first_name,last_name,profile_pic,locale,timezone,gender",
}

var HTTPConfig = struct {
	RequestTimeout time.Duration
}{
	RequestTimeout: 10 * time.Second,
}

var MessageLimits = struct {
	// Messenger rejects text messages longer than this.
	PlainTextMaxLength   int
	InlineQueryMinLength int
}{
	PlainTextMaxLength:   320,
	InlineQueryMinLength: 2,
}

var CacheTTL = struct {
	Translation time.Duration
}{
	Translation: 10 * time.Minute,
}

// Fixed user-facing texts. The handler contract requires these verbatim
// per scenario, so they live here rather than in config.
const (
	HelpText = "Просто введи слово, фразу или число, и я переведу.\n" +
		"Также я поддерживаю встроенный режим: просто набери `@SozdikBot` " +
		"и любую фразу в поле сообщения и выбери подходящий тебе ответ."

	StartText = "Привет! Я официальный бот sozdik.kz и могу переводить " +
		"с русского на казахский и обратно.\n\n" +
		HelpText + "\n\n" +
		"Разработано: @yenbekbay\nСервис: sozdik.kz"

	NoTranslationsFoundText = "К сожалению, я не знаю, как это перевести 😔"

	ErrorText = "Что-то пошло не так. Пожалуйста, попробуйте еще раз чуть позже."
)

// Bot command tokens.
const (
	StartCommand = "/start"
	HelpCommand  = "/help"
)

// Analytics event names.
const (
	EventRequestedStart        = "Requested the start message"
	EventRequestedHelp         = "Requested the help message"
	EventRequestedTranslations = "Requested translations"
	EventSentInlineQuery       = "Sent an inline query"
)
