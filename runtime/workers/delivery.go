package workers

import (
	"context"
	"log/slog"

	"quickchat/contract"
	"quickchat/domain/event"
	"quickchat/observability"
)

// DeliveryWorker is the routing half of the send path. It consumes events
// that are emitted strictly after a message has been persisted, looks the
// receiver up in the presence registry and pushes the payload to the live
// connection when there is one. Delivery is fire and forget: an offline
// receiver or a failed push leaves the message in the store for the next
// pull, nothing is retried and nothing is reported back to the sender.
//
// A single DeliveryWorker instance consumes the channel, so live pushes for
// any sender/receiver pair keep the persistence order.
type DeliveryWorker struct {
	log        *slog.Logger
	registry   contract.IPresence
	deliveries chan event.DomainEvent
	telemetry  chan event.DomainEvent
	sinks      []contract.EventSink
	stats      *observability.Stats
}

func NewDeliveryWorker(log *slog.Logger, registry contract.IPresence,
	deliveries, telemetry chan event.DomainEvent,
	sinks []contract.EventSink, stats *observability.Stats) *DeliveryWorker {
	return &DeliveryWorker{
		log:        log,
		registry:   registry,
		deliveries: deliveries,
		telemetry:  telemetry,
		sinks:      sinks,
		stats:      stats,
	}
}

func (w *DeliveryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping delivery worker")
			return nil
		case evt := <-w.deliveries:
			w.route(ctx, evt)
			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event lost")
			}
		}
	}
}

func (w *DeliveryWorker) route(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.NewMessage:
		sink, ok := w.registry.Lookup(e.Message.ReceiverID)
		if ok {
			if err := sink.Consume(ctx, e); err != nil {
				// Push failure is swallowed: the message is already durable.
				w.log.Warn("Live push failed",
					"receiver_id", e.Message.ReceiverID,
					"message_id", e.Message.ID,
					"error", err)
				w.stats.DeliveriesDropped.Add(1)
			} else {
				w.stats.MessagesDelivered.Add(1)
			}
		}
	case event.PresenceChanged:
		for _, userID := range w.registry.OnlineUserIDs() {
			sink, ok := w.registry.Lookup(userID)
			if !ok {
				continue
			}
			if err := sink.Consume(ctx, e); err != nil {
				w.log.Debug("Presence broadcast dropped", "user_id", userID, "error", err)
			}
		}
	}

	// Permanent sinks (search index, projections) see every event.
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			w.log.Warn("Sink failed", "event", evt.EventName(), "error", err)
		}
	}
}
