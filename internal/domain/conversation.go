package domain

import "time"

// Conversation is the message thread attached to one application.
type Conversation struct {
	ID            string    `json:"_id,omitempty"`
	ApplicationID string    `json:"applicationId"`
	Messages      []Message `json:"messages"`
}

type Message struct {
	ID        string    `json:"_id"`
	Sender    Ref[User] `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SentMessage ties a message returned by the send endpoint to the
// application it was posted on.
type SentMessage struct {
	ApplicationID string
	Message       Message
}
