package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"quickchat/domain"
)

func Test_Search_Scoped_To_Viewer(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewSearchRepository(blugeWriter, log, 10)
	at := time.Now().UTC()

	visible := domain.Message{ID: uuid.New(), SenderID: "alice", ReceiverID: "bob",
		Text: "let's grab coffee tomorrow", CreatedAt: at}
	foreign := domain.Message{ID: uuid.New(), SenderID: "carol", ReceiverID: "dave",
		Text: "coffee sounds great", CreatedAt: at}
	imageOnly := domain.Message{ID: uuid.New(), SenderID: "alice", ReceiverID: "bob",
		Image: "/uploads/x.png", CreatedAt: at}

	for _, m := range []domain.Message{visible, foreign, imageOnly} {
		req.NoError(repository.Index(m))
	}

	// Bob participates in the first message only
	hits, err := repository.Search(ctx, "bob", "coffee")
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(visible.ID.String(), hits[0].MessageID)

	// Carol sees her own conversation
	hits, err = repository.Search(ctx, "carol", "coffee")
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(foreign.ID.String(), hits[0].MessageID)

	// No match at all
	hits, err = repository.Search(ctx, "bob", "zeppelin")
	req.NoError(err)
	req.Empty(lo.Map(hits, func(h SearchHit, _ int) string { return h.MessageID }))
}
