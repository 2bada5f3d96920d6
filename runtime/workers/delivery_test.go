package workers_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"quickchat/contract"
	"quickchat/domain"
	"quickchat/domain/event"
	"quickchat/observability"
	"quickchat/runtime"
	"quickchat/runtime/workers"
	"quickchat/sink"
)

type failingSink struct{}

func (failingSink) Consume(ctx context.Context, e event.DomainEvent) error {
	return fmt.Errorf("connection closed")
}

func startDelivery(t *testing.T, registry contract.IPresence,
	stats *observability.Stats, sinks ...contract.EventSink) (chan event.DomainEvent, context.CancelFunc) {
	t.Helper()
	deliveries := make(chan event.DomainEvent, 16)
	telemetry := make(chan event.DomainEvent, 16)
	worker := workers.NewDeliveryWorker(slog.Default(), registry, deliveries, telemetry, sinks, stats)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = worker.Run(ctx) }()
	return deliveries, cancel
}

func TestDeliveryWorker_Pushes_To_Online_Receiver(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	stats := observability.NewStats()

	receiver := sink.NewChannelSink(slog.Default(), 8, time.Second, nil)
	registry.Register("bob", receiver)

	deliveries, cancel := startDelivery(t, registry, stats)
	defer cancel()

	message := domain.Message{ID: uuid.New(), SenderID: "alice", ReceiverID: "bob", Text: "ping"}
	deliveries <- event.NewMessage{Message: message}

	select {
	case evt := <-receiver.Events:
		pushed, ok := evt.(event.NewMessage)
		req.True(ok)
		req.Equal("ping", pushed.Message.Text)
		req.Equal("alice", pushed.Message.SenderID)
		req.Equal("bob", pushed.Message.ReceiverID)
	case <-time.After(time.Second):
		t.Fatal("expected a live push to the receiver")
	}
}

func TestDeliveryWorker_Offline_Receiver_Is_Skipped(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	stats := observability.NewStats()

	deliveries, cancel := startDelivery(t, registry, stats)
	defer cancel()

	message := domain.Message{ID: uuid.New(), SenderID: "alice", ReceiverID: "bob", Text: "into the void"}
	deliveries <- event.NewMessage{Message: message}

	req.Eventually(func() bool {
		return len(deliveries) == 0
	}, time.Second, 10*time.Millisecond)
	req.Zero(stats.MessagesDelivered.Load())
	req.Zero(stats.DeliveriesDropped.Load())
}

func TestDeliveryWorker_Push_Failure_Is_Swallowed(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	stats := observability.NewStats()
	registry.Register("bob", failingSink{})

	deliveries, cancel := startDelivery(t, registry, stats)
	defer cancel()

	deliveries <- event.NewMessage{Message: domain.Message{ID: uuid.New(), ReceiverID: "bob"}}

	req.Eventually(func() bool {
		return stats.DeliveriesDropped.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDeliveryWorker_Presence_Broadcast_Reaches_Everyone(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	stats := observability.NewStats()

	alice := sink.NewChannelSink(slog.Default(), 8, time.Second, nil)
	bob := sink.NewChannelSink(slog.Default(), 8, time.Second, nil)
	registry.Register("alice", alice)
	registry.Register("bob", bob)

	deliveries, cancel := startDelivery(t, registry, stats)
	defer cancel()

	deliveries <- event.PresenceChanged{Online: []string{"alice", "bob"}}

	for _, s := range []*sink.ChannelSink{alice, bob} {
		select {
		case evt := <-s.Events:
			req.Equal(event.OnlineUsersName, evt.EventName())
		case <-time.After(time.Second):
			t.Fatal("expected a presence broadcast")
		}
	}
}

func TestDeliveryWorker_Fans_Out_To_Permanent_Sinks(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()
	stats := observability.NewStats()
	permanent := sink.NewChannelSink(slog.Default(), 8, time.Second, nil)

	deliveries, cancel := startDelivery(t, registry, stats, permanent)
	defer cancel()

	deliveries <- event.NewMessage{Message: domain.Message{ID: uuid.New(), ReceiverID: "offline"}}

	select {
	case evt := <-permanent.Events:
		req.Equal(event.NewMessageName, evt.EventName())
	case <-time.After(time.Second):
		t.Fatal("expected the permanent sink to see the event")
	}
}
