package domain

// Chat identifies a Telegram chat and carries the metadata the bot logs
// alongside it.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Message is a normalized inbound chat message. Created by the webhook
// layer, consumed once by the message handler, never stored.
type Message struct {
	Text string
	From *User
	Chat *Chat
}

// InlineQuery is a normalized search-as-you-type request.
type InlineQuery struct {
	ID    string
	From  *User
	Query string
}

// InlineSuggestion is one candidate answer to an inline query. ID is a
// content hash so the platform can deduplicate identical results.
type InlineSuggestion struct {
	ID          string
	Title       string
	Description string
	MessageText string
}

// MessengerEvent is a normalized inbound Messenger message.
type MessengerEvent struct {
	RecipientID string
	Text        string
}
