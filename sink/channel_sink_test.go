package sink

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickchat/domain/event"
	"quickchat/errors"
)

func TestChannelSink_Consume(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewChannelSink(slog.Default(), 2, 10*time.Millisecond, nil)

	req.NoError(s.Consume(ctx, event.PresenceChanged{Online: []string{"a"}}))
	req.NoError(s.Consume(ctx, event.PresenceChanged{Online: []string{"a", "b"}}))
	req.Len(s.Events, 2)
}

func TestChannelSink_Saturation_Cancels_Connection(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	cancelled := false
	s := NewChannelSink(slog.Default(), 1, 10*time.Millisecond, func() { cancelled = true })

	// Fill the buffer, nobody drains it
	req.NoError(s.Consume(ctx, event.PresenceChanged{}))

	err := s.Consume(ctx, event.PresenceChanged{})
	req.ErrorIs(err, errors.ErrSinkSaturated)
	req.True(cancelled)
}

func TestChannelSink_Context_Cancellation_Wins(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewChannelSink(slog.Default(), 0, time.Second, nil)
	err := s.Consume(ctx, event.PresenceChanged{})
	req.ErrorIs(err, context.Canceled)
}
