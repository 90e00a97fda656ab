package domain

import "time"

// RawMessage is a single post pulled from an external channel.
// It is immutable input to the transformer.
type RawMessage struct {
	Channel   string    `json:"channel"`
	Text      string    `json:"text"`
	MessageID string    `json:"message_id"`
	PostedAt  time.Time `json:"posted_at"`
}
