package sink

import (
	"context"
	"log/slog"
	"time"

	"quickchat/contract"
	"quickchat/domain/event"
	"quickchat/errors"
)

// ChannelSink bridges the delivery path and one websocket connection through
// a bounded buffered channel. Consume never blocks longer than the configured
// timeout: a saturated buffer means the consumer is slow or stuck, in which
// case the connection is cancelled instead of buffering without bound.
type ChannelSink struct {
	Events  chan event.DomainEvent
	log     *slog.Logger
	timeout time.Duration
	cancel  context.CancelFunc
}

var _ contract.EventSink = (*ChannelSink)(nil)

func NewChannelSink(log *slog.Logger, bufferSize int, timeout time.Duration,
	cancel context.CancelFunc) *ChannelSink {
	return &ChannelSink{
		Events:  make(chan event.DomainEvent, bufferSize),
		log:     log,
		timeout: timeout,
		cancel:  cancel,
	}
}

func (s *ChannelSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.timeout):
		s.log.Warn("Connection sink saturated, cancelling connection", "event", e.EventName())
		if s.cancel != nil {
			s.cancel()
		}
		return errors.ErrSinkSaturated
	}
}
