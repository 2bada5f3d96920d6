package runtime

import (
	"sync"

	"quickchat/contract"
)

// Registry is the process-wide presence map: one live connection sink per
// user. It is created at service start and injected wherever routing is
// needed; it is the only state shared by every connection goroutine, so all
// access goes through the mutex and nothing else is done under it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // userID -> live connection sink
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
	}
}

// Register inserts or overwrites the mapping for userID. A second connection
// from the same user wins: the previous sink is simply dropped from the map,
// its socket is left to die on its own.
func (r *Registry) Register(userID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = sink
}

// Unregister removes the mapping only when the stored sink is the one passed
// in. A stale disconnect arriving after a reconnect therefore cannot evict
// the newer connection. Returns whether an entry was removed.
func (r *Registry) Unregister(userID string, sink contract.EventSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[userID]
	if !ok || current != sink {
		return false
	}
	delete(r.sessions, userID)
	return true
}

// Lookup is a pure read of the current sink for userID.
func (r *Registry) Lookup(userID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sessions[userID]
	return sink, ok
}

// OnlineUserIDs returns a snapshot of the currently connected user ids.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
