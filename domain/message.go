package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. Sender, receiver, text and
// image are immutable once created; only Seen transitions, false to true.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}

// Empty reports whether the message carries neither text nor an image.
// Such messages are rejected before persistence.
func (m Message) Empty() bool {
	return m.Text == "" && m.Image == ""
}
