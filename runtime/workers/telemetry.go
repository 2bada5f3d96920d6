package workers

import (
	"context"
	"log/slog"
	"time"

	"quickchat/domain/event"
	"quickchat/observability"
)

// TelemetryWorker drains the telemetry copy of the event stream and logs a
// periodic summary together with the live counters. Losing telemetry events
// is acceptable, the channel is written to with a non-blocking send.
type TelemetryWorker struct {
	log            *slog.Logger
	telemetry      chan event.DomainEvent
	stats          *observability.Stats
	metricInterval time.Duration
	counters       map[string]uint64
}

func NewTelemetryWorker(log *slog.Logger, telemetry chan event.DomainEvent,
	stats *observability.Stats, metricInterval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		telemetry:      telemetry,
		stats:          stats,
		metricInterval: metricInterval,
		counters:       make(map[string]uint64),
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry worker")
			return nil
		case evt := <-w.telemetry:
			w.counters[evt.EventName()]++
		case <-ticker.C:
			w.log.Info("Telemetry",
				"events", w.counters,
				"stats", w.stats.Snapshot())
		}
	}
}
