package messenger

// WebhookUpdate is the Graph API webhook envelope for page events.
type WebhookUpdate struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID        string      `json:"id"`
	Time      int64       `json:"time"`
	Messaging []Messaging `json:"messaging"`
}

type Messaging struct {
	Sender    Participant     `json:"sender"`
	Recipient Participant     `json:"recipient"`
	Timestamp int64           `json:"timestamp"`
	Message   *ReceivedMessage `json:"message,omitempty"`
}

type Participant struct {
	ID string `json:"id"`
}

type ReceivedMessage struct {
	MID  string `json:"mid"`
	Text string `json:"text"`
}

type sendMessageRequest struct {
	Recipient Participant  `json:"recipient"`
	Message   *messageBody `json:"message,omitempty"`
	// SenderAction is set instead of Message for typing indicators.
	SenderAction string `json:"sender_action,omitempty"`
}

type messageBody struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}
