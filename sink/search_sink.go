package sink

import (
	"context"
	"log/slog"

	"quickchat/domain/event"
	"quickchat/infrastructure/storage"
	"quickchat/observability"
)

// SearchSink feeds persisted messages into the full-text index. Indexing is a
// side effect of delivery fan-out: a failure here never affects the send path.
type SearchSink struct {
	repository storage.ISearchRepository
	stats      *observability.Stats
	log        *slog.Logger
}

func NewSearchSink(repository storage.ISearchRepository, stats *observability.Stats,
	log *slog.Logger) SearchSink {
	return SearchSink{repository: repository, stats: stats, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.NewMessage:
		if err := s.repository.Index(evt.Message); err != nil {
			return err
		}
		s.stats.MessagesIndexed.Add(1)
		return nil
	default:
		return nil
	}
}
