package event

import (
	"quickchat/domain"
)

// Event names double as the websocket frame names pushed to clients.
const (
	NewMessageName  = "new-message"
	OnlineUsersName = "online-users"
)

type DomainEvent interface {
	EventName() string
}

// NewMessage is emitted after a message has been durably persisted.
// It carries the full payload so sinks never have to read back the store.
type NewMessage struct {
	Message domain.Message
}

func (e NewMessage) EventName() string {
	return NewMessageName
}

// PresenceChanged is broadcast to every connected client whenever a user
// connects or disconnects. Online is a snapshot, not a delta.
type PresenceChanged struct {
	Online []string
}

func (e PresenceChanged) EventName() string {
	return OnlineUsersName
}
