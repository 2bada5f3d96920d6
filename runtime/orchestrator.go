// Package runtime wires presence, delivery and persistence together. It
// orchestrates the system without containing transport or storage details.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quickchat/contract"
	"quickchat/domain"
	"quickchat/domain/event"
	"quickchat/errors"
	"quickchat/infrastructure/storage"
	"quickchat/moderation"
	"quickchat/observability"
	"quickchat/projection"
	"quickchat/runtime/workers"
)

type Orchestrator struct {
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IPresence
	messages       storage.IMessageRepository
	moderator      *moderation.Moderator
	stats          *observability.Stats
	deliveries     chan event.DomainEvent
	telemetry      chan event.DomainEvent
	permanentSinks []contract.EventSink
	metricInterval time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IPresence, messages storage.IMessageRepository,
	moderator *moderation.Moderator, stats *observability.Stats,
	bufferSize int, metricInterval time.Duration) *Orchestrator {
	return &Orchestrator{
		log:            log,
		supervisor:     supervisor,
		registry:       registry,
		messages:       messages,
		moderator:      moderator,
		stats:          stats,
		deliveries:     make(chan event.DomainEvent, bufferSize),
		telemetry:      make(chan event.DomainEvent, bufferSize),
		metricInterval: metricInterval,
	}
}

// Add registers permanent sinks that observe every post-persist event
// (search indexing, projections). Must be called before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Connect records the user's live connection and broadcasts the new presence
// snapshot to everyone online.
func (o *Orchestrator) Connect(userID string, sink contract.EventSink) {
	o.registry.Register(userID, sink)
	o.stats.Connections.Add(1)
	o.dispatch(event.PresenceChanged{Online: o.registry.OnlineUserIDs()})
}

// Disconnect removes the mapping, but only if it still points at the given
// sink: a disconnect racing a reconnect must not evict the newer connection.
func (o *Orchestrator) Disconnect(userID string, sink contract.EventSink) {
	if !o.registry.Unregister(userID, sink) {
		return
	}
	o.stats.Disconnections.Add(1)
	o.dispatch(event.PresenceChanged{Online: o.registry.OnlineUserIDs()})
}

func (o *Orchestrator) OnlineUserIDs() []string {
	return o.registry.OnlineUserIDs()
}

type SendMessageCommand struct {
	SenderID   string
	ReceiverID string
	Text       string
	Image      string
}

// SendMessage moderates, persists and then routes a message. Routing only
// happens once the store accepted the record; a persistence failure is
// returned to the sender and nothing is pushed. Live delivery is dispatched
// with a non-blocking send, the durable record is the source of truth.
func (o *Orchestrator) SendMessage(ctx context.Context, cmd SendMessageCommand) (domain.Message, error) {
	if (domain.Message{Text: cmd.Text, Image: cmd.Image}).Empty() {
		return domain.Message{}, errors.ErrEmptyMessage
	}

	text := cmd.Text
	if o.moderator != nil && text != "" {
		text = o.moderator.Censor(text)
		if lang := moderation.DetectLanguage(text); lang != "" {
			o.log.Debug("Message language detected", "lang", lang)
		}
	}

	message := domain.Message{
		ID:         uuid.New(),
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		Text:       text,
		Image:      cmd.Image,
		CreatedAt:  time.Now().UTC(),
	}

	if err := o.messages.Insert(message); err != nil {
		return domain.Message{}, err
	}
	o.stats.MessagesSent.Add(1)

	o.dispatch(event.NewMessage{Message: message})
	return message, nil
}

// Conversation returns the full history between viewer and counterpart, both
// directions, and bulk-marks the counterpart's messages to the viewer as
// seen. The returned records reflect the state before the marking, matching
// the product's conversation-open behavior.
func (o *Orchestrator) Conversation(viewerID, otherID string) ([]domain.Message, error) {
	messages, err := o.messages.FindBetween(viewerID, otherID)
	if err != nil {
		return nil, err
	}
	if err := o.messages.MarkSeenBetween(otherID, viewerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageSeen marks a single message seen by id. No ownership check is
// performed, mirroring the product's endpoint.
func (o *Orchestrator) MarkMessageSeen(id uuid.UUID) error {
	return o.messages.MarkSeenByID(id)
}

// UnseenCounts computes the sparse per-contact unseen counters for the
// contact sidebar.
func (o *Orchestrator) UnseenCounts(viewerID string, candidateIDs []string) (map[string]int, error) {
	return projection.UnseenCounts(o.messages, viewerID, candidateIDs)
}

func (o *Orchestrator) dispatch(evt event.DomainEvent) {
	select {
	case o.deliveries <- evt:
	default:
		o.log.Warn("Delivery channel full, dropping event", "event", evt.EventName())
		o.stats.DeliveriesDropped.Add(1)
	}
}

// Start registers all workers with the supervisor and blocks until shutdown.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.supervisor.Add(
		workers.NewDeliveryWorker(o.log, o.registry, o.deliveries, o.telemetry, o.permanentSinks, o.stats),
		workers.NewTelemetryWorker(o.log, o.telemetry, o.stats, o.metricInterval),
		workers.NewChannelCapacityWorker(o.log, []workers.NamedChannel{
			{Name: "deliveries", Channel: o.deliveries},
			{Name: "telemetry", Channel: o.telemetry},
		}, o.metricInterval),
		workers.NewHealthMonitoringWorker(o.log, o.metricInterval),
	)

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

// Stop cancels the supervised workers; Start unblocks once they drained.
func (o *Orchestrator) Stop() {
	o.supervisor.Stop()
}
