package observability

import (
	"sync/atomic"
	"time"
)

// Stats aggregates live counters for the service. All fields are atomic, so
// workers and connection goroutines update them without coordination.
type Stats struct {
	started time.Time

	MessagesSent      atomic.Uint64
	MessagesDelivered atomic.Uint64
	DeliveriesDropped atomic.Uint64
	MessagesIndexed   atomic.Uint64
	Connections       atomic.Uint64
	Disconnections    atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{started: time.Now().UTC()}
}

// Snapshot returns a point-in-time view, used by the debug inspector and
// periodic telemetry logging.
func (s *Stats) Snapshot() map[string]any {
	return map[string]any{
		"uptime":             time.Since(s.started).Round(time.Second).String(),
		"messages_sent":      s.MessagesSent.Load(),
		"messages_delivered": s.MessagesDelivered.Load(),
		"deliveries_dropped": s.DeliveriesDropped.Load(),
		"messages_indexed":   s.MessagesIndexed.Load(),
		"connections":        s.Connections.Load(),
		"disconnections":     s.Disconnections.Load(),
	}
}
