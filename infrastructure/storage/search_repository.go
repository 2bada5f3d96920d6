package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"

	"quickchat/domain"
)

type ISearchRepository interface {
	Index(message domain.Message) error
	Search(ctx context.Context, viewerID, query string) ([]SearchHit, error)
}

// SearchRepository maintains a Bluge full-text index over message text.
// Indexing is best-effort and asynchronous with respect to persistence:
// BadgerDB remains the source of truth, the index only serves lookups.
type SearchRepository struct {
	writer *bluge.Writer
	log    *slog.Logger
	limit  int
}

func NewSearchRepository(writer *bluge.Writer, log *slog.Logger, limit int) *SearchRepository {
	return &SearchRepository{writer: writer, log: log, limit: limit}
}

type SearchHit struct {
	MessageID string
	Text      string
}

// Index upserts one message. Image-only messages carry no searchable text and
// are skipped.
func (s *SearchRepository) Index(message domain.Message) error {
	if message.Text == "" {
		return nil
	}
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("text", message.Text).StoreValue()).
		AddField(bluge.NewKeywordField("sender_id", message.SenderID)).
		AddField(bluge.NewKeywordField("receiver_id", message.ReceiverID))

	return s.writer.Update(doc.ID(), doc)
}

// Search returns messages matching the query in which the viewer participates,
// either as sender or as receiver. Results are capped by the configured limit.
func (s *SearchRepository) Search(ctx context.Context, viewerID, query string) ([]SearchHit, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("search reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close search reader", "error", err)
		}
	}()

	participant := bluge.NewBooleanQuery()
	participant.AddShould(bluge.NewTermQuery(viewerID).SetField("sender_id"))
	participant.AddShould(bluge.NewTermQuery(viewerID).SetField("receiver_id"))
	participant.SetMinShould(1)

	q := bluge.NewBooleanQuery()
	q.AddMust(bluge.NewMatchQuery(query).SetField("text"))
	q.AddMust(participant)

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(s.limit, q))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var hits []SearchHit
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		var hit SearchHit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "text":
				hit.Text = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
