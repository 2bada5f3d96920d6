// Package projection derives read models from the message store.
package projection

import (
	"quickchat/infrastructure/storage"
)

// UnseenCounts returns, for the given viewer, the number of unseen messages
// per sender among the candidate contacts. The map is sparse: contacts with
// nothing pending are absent, never present with a zero.
func UnseenCounts(messages storage.IMessageRepository, viewerID string, candidateIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, senderID := range candidateIDs {
		if senderID == viewerID {
			continue
		}
		unseen, err := messages.FindUnseenFrom(senderID, viewerID)
		if err != nil {
			return nil, err
		}
		if len(unseen) > 0 {
			counts[senderID] = len(unseen)
		}
	}
	return counts, nil
}
