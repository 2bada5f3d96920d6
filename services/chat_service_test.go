package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickchat/domain"
	"quickchat/errors"
	"quickchat/infrastructure/storage"
	"quickchat/media"
	"quickchat/mocks"
	"quickchat/observability"
	"quickchat/runtime"
	"quickchat/services"
)

func newChatService(t *testing.T, users storage.IUserRepository,
	messages storage.IMessageRepository) *services.ChatService {
	t.Helper()
	uploads, err := media.NewStore(slog.Default(), t.TempDir(), "/uploads")
	require.NoError(t, err)

	orchestrator := runtime.NewOrchestrator(slog.Default(), nil, runtime.NewRegistry(),
		messages, nil, observability.NewStats(), 16, time.Minute)
	return services.NewChatService(slog.Default(), orchestrator, users, nil, uploads)
}

func TestContacts_Folds_In_Unseen_Counters(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	users.EXPECT().ListExcluding("viewer").Return([]domain.User{
		{ID: "alice", FullName: "Alice"},
		{ID: "carol", FullName: "Carol"},
	}, nil)
	messages.EXPECT().FindUnseenFrom("alice", "viewer").
		Return([]domain.Message{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
	messages.EXPECT().FindUnseenFrom("carol", "viewer").
		Return(nil, nil)

	service := newChatService(t, users, messages)
	contacts, err := service.Contacts("viewer")
	req.NoError(err)
	req.Len(contacts, 2)
	req.Equal(2, contacts[0].Unseen)
	req.Zero(contacts[1].Unseen)
}

func TestSendMessage_Persists_Then_Returns_Record(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	messages.EXPECT().Insert(gomock.Any()).
		DoAndReturn(func(m domain.Message) error {
			req.Equal("alice", m.SenderID)
			req.Equal("bob", m.ReceiverID)
			req.Equal("hello", m.Text)
			req.False(m.Seen)
			req.False(m.CreatedAt.IsZero())
			return nil
		})

	service := newChatService(t, users, messages)
	message, err := service.SendMessage(context.Background(), "alice", "bob", "hello", "")
	req.NoError(err)
	req.NotEqual(uuid.Nil, message.ID)
}

func TestSendMessage_Rejects_Empty_Payload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	service := newChatService(t, users, messages)
	_, err := service.SendMessage(context.Background(), "alice", "bob", "", "")
	req.ErrorIs(err, errors.ErrEmptyMessage)
}

func TestSendMessage_Rejects_Invalid_Image(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	service := newChatService(t, users, messages)
	_, err := service.SendMessage(context.Background(), "alice", "bob", "", "not-base64!!")
	req.ErrorIs(err, errors.ErrInvalidImage)
}

func TestConversation_Marks_Incoming_As_Seen(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	history := []domain.Message{{ID: uuid.New(), SenderID: "bob", ReceiverID: "viewer", Text: "hi"}}
	gomock.InOrder(
		messages.EXPECT().FindBetween("viewer", "bob").Return(history, nil),
		messages.EXPECT().MarkSeenBetween("bob", "viewer").Return(nil),
	)

	service := newChatService(t, users, messages)
	got, err := service.Conversation("viewer", "bob")
	req.NoError(err)
	req.Equal(history, got)
}
