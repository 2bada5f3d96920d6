//go:generate go run go.uber.org/mock/mockgen -source=message_repository.go -destination=../../mocks/mock_message_repository.go -package=mocks
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"quickchat/domain"
	"quickchat/errors"
)

type IMessageRepository interface {
	Insert(message domain.Message) error
	FindBetween(userA, userB string) ([]domain.Message, error)
	FindUnseenFrom(senderID, receiverID string) ([]domain.Message, error)
	MarkSeenBetween(senderID, receiverID string) error
	MarkSeenByID(id uuid.UUID) error
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// diskMessage is the JSON shape persisted in BadgerDB.
type diskMessage struct {
	ID         uuid.UUID `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}

// pairKey orders the two participant ids so that both directions of a
// conversation share a single key prefix.
func pairKey(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + "|" + userB
}

// messageKey is formatted as "msg:{pair}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func messageKey(m domain.Message) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s",
		pairKey(m.SenderID, m.ReceiverID),
		m.CreatedAt.UnixNano(),
		m.ID,
	))
}

func idKey(id uuid.UUID) []byte {
	return []byte("msgid:" + id.String())
}

// Insert persists a message and a secondary by-id index in one transaction.
func (m MessageRepository) Insert(message domain.Message) error {
	bytes, err := json.Marshal(fromDomain(message))
	if err != nil {
		return err
	}
	key := messageKey(message)
	return m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		// The index stores the primary key, not a copy of the record.
		return txn.Set(idKey(message.ID), key)
	})
}

// FindBetween returns every message exchanged between the two users, both
// directions, in creation order. Thanks to the padded timestamp in the key,
// a forward prefix scan is already chronological.
func (m MessageRepository) FindBetween(userA, userB string) ([]domain.Message, error) {
	prefix := []byte("msg:" + pairKey(userA, userB) + ":")
	var records []diskMessage

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record diskMessage
				if err := json.Unmarshal(value, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r diskMessage, _ int) domain.Message {
		return toDomain(r)
	}), nil
}

// FindUnseenFrom returns the unseen messages sent by senderID to receiverID,
// in creation order.
func (m MessageRepository) FindUnseenFrom(senderID, receiverID string) ([]domain.Message, error) {
	messages, err := m.FindBetween(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(msg domain.Message, _ int) bool {
		return msg.SenderID == senderID && msg.ReceiverID == receiverID && !msg.Seen
	}), nil
}

// MarkSeenBetween flips the seen flag on every unseen message sent by senderID
// to receiverID. The transition is monotonic: already-seen records are skipped.
func (m MessageRepository) MarkSeenBetween(senderID, receiverID string) error {
	prefix := []byte("msg:" + pairKey(senderID, receiverID) + ":")
	return m.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		type pending struct {
			key   []byte
			value []byte
		}
		var updates []pending

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var record diskMessage
			err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &record)
			})
			if err != nil {
				return err
			}
			if record.SenderID != senderID || record.Seen {
				continue
			}
			record.Seen = true
			bytes, err := json.Marshal(record)
			if err != nil {
				return err
			}
			updates = append(updates, pending{key: item.KeyCopy(nil), value: bytes})
		}

		for _, u := range updates {
			if err := txn.Set(u.key, u.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkSeenByID flips the seen flag on a single message. Marking an
// already-seen message again is a no-op, not an error.
func (m MessageRepository) MarkSeenByID(id uuid.UUID) error {
	return m.db.Update(func(txn *badger.Txn) error {
		indexItem, err := txn.Get(idKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.ErrMessageNotFound
		}
		if err != nil {
			return err
		}
		key, err := indexItem.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			m.log.Warn("Dangling message index", "id", id)
			return errors.ErrMessageNotFound
		}
		if err != nil {
			return err
		}

		var record diskMessage
		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &record)
		}); err != nil {
			return err
		}
		if record.Seen {
			return nil
		}
		record.Seen = true
		bytes, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return txn.Set(key, bytes)
	})
}

func fromDomain(m domain.Message) diskMessage {
	return diskMessage{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Image:      m.Image,
		Seen:       m.Seen,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomain(r diskMessage) domain.Message {
	return domain.Message{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Text:       r.Text,
		Image:      r.Image,
		Seen:       r.Seen,
		CreatedAt:  r.CreatedAt,
	}
}
