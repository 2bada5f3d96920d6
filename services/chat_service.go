//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"quickchat/domain"
	"quickchat/infrastructure/storage"
	"quickchat/media"
	"quickchat/runtime"
)

type IChatService interface {
	Contacts(viewerID string) ([]Contact, error)
	Conversation(viewerID, otherID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, senderID, receiverID, text, imageDataURL string) (domain.Message, error)
	MarkMessageSeen(id uuid.UUID) error
	Search(ctx context.Context, viewerID, query string) ([]storage.SearchHit, error)
}

// Contact is a sidebar entry: the user plus the viewer's pending counter.
// Unseen is omitted from the JSON payload when zero.
type Contact struct {
	domain.User
	Unseen int `json:"unseen,omitempty"`
}

var _ IChatService = (*ChatService)(nil)

type ChatService struct {
	log          *slog.Logger
	orchestrator *runtime.Orchestrator
	users        storage.IUserRepository
	search       storage.ISearchRepository
	uploads      *media.Store
}

func NewChatService(log *slog.Logger, orchestrator *runtime.Orchestrator,
	users storage.IUserRepository, search storage.ISearchRepository,
	uploads *media.Store) *ChatService {
	return &ChatService{
		log:          log,
		orchestrator: orchestrator,
		users:        users,
		search:       search,
		uploads:      uploads,
	}
}

// Contacts lists every other account with the viewer's unseen counter folded
// in, so a single call populates the sidebar.
func (s *ChatService) Contacts(viewerID string) ([]Contact, error) {
	others, err := s.users.ListExcluding(viewerID)
	if err != nil {
		return nil, err
	}

	ids := lo.Map(others, func(u domain.User, _ int) string { return u.ID })
	counts, err := s.orchestrator.UnseenCounts(viewerID, ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(others, func(u domain.User, _ int) Contact {
		return Contact{User: u, Unseen: counts[u.ID]}
	}), nil
}

func (s *ChatService) Conversation(viewerID, otherID string) ([]domain.Message, error) {
	return s.orchestrator.Conversation(viewerID, otherID)
}

// SendMessage uploads the attached image first, then hands the command to the
// orchestrator which moderates, persists and routes it.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID, text, imageDataURL string) (domain.Message, error) {
	var imageURL string
	if imageDataURL != "" {
		url, err := s.uploads.SaveDataURL(imageDataURL)
		if err != nil {
			return domain.Message{}, err
		}
		imageURL = url
	}

	return s.orchestrator.SendMessage(ctx, runtime.SendMessageCommand{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      imageURL,
	})
}

func (s *ChatService) MarkMessageSeen(id uuid.UUID) error {
	return s.orchestrator.MarkMessageSeen(id)
}

func (s *ChatService) Search(ctx context.Context, viewerID, query string) ([]storage.SearchHit, error) {
	return s.search.Search(ctx, viewerID, query)
}
