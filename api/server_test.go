package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickchat/api"
	"quickchat/auth"
	"quickchat/domain"
	"quickchat/errors"
	"quickchat/mocks"
	"quickchat/services"
)

type fixture struct {
	server *httptest.Server
	auth   *mocks.MockIAuthService
	chat   *mocks.MockIChatService
	token  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	authService := mocks.NewMockIAuthService(ctrl)
	chatService := mocks.NewMockIChatService(ctrl)

	server := httptest.NewServer(api.NewServer(slog.Default(), authService, chatService).Router())
	t.Cleanup(server.Close)

	token, err := auth.GenerateToken("viewer", time.Hour)
	require.NoError(t, err)

	return fixture{server: server, auth: authService, chat: chatService, token: token}
}

func (f fixture) do(t *testing.T, method, path string, body any, authed bool) *http.Response {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	request, err := http.NewRequest(method, f.server.URL+path, &payload)
	require.NoError(t, err)
	if authed {
		request.Header.Set("token", f.token)
	}
	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSignup_Returns_Token_And_User(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.auth.EXPECT().
		Register("Alice", "alice@example.com", "secret-pass", "hello").
		Return(domain.User{ID: "user-1", FullName: "Alice"}, "a-token", nil)

	resp := f.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
		"bio":      "hello",
	}, false)

	req.Equal(http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	req.Equal(true, body["success"])
	req.Equal("a-token", body["token"])
}

func TestSignup_Duplicate_Email_Maps_To_Conflict(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.auth.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.User{}, "", errors.ErrUserAlreadyExists)

	resp := f.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Alice", "email": "taken@example.com", "password": "secret", "bio": "x",
	}, false)

	req.Equal(http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	req.Equal(false, body["success"])
}

func TestLogin_Invalid_Credentials(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.auth.EXPECT().
		Login("alice@example.com", "wrong").
		Return(domain.User{}, "", errors.ErrInvalidCredentials)

	resp := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, false)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_Routes_Require_Token(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/messages/users", nil, false)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestContacts_Returns_Sidebar_Entries(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chat.EXPECT().Contacts("viewer").Return([]services.Contact{
		{User: domain.User{ID: "alice"}, Unseen: 3},
		{User: domain.User{ID: "carol"}},
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/messages/users", nil, true)
	req.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	users := body["users"].([]any)
	req.Len(users, 2)

	first := users[0].(map[string]any)
	req.Equal("alice", first["id"])
	req.Equal(float64(3), first["unseen"])
	// Zero counters are omitted from the payload entirely.
	req.NotContains(users[1].(map[string]any), "unseen")
}

func TestConversation_Passes_Both_Participants(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chat.EXPECT().Conversation("viewer", "bob").
		Return([]domain.Message{{ID: uuid.New(), SenderID: "bob", ReceiverID: "viewer", Text: "hi"}}, nil)

	resp := f.do(t, http.MethodGet, "/api/messages/bob", nil, true)
	req.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	req.Len(body["messages"].([]any), 1)
}

func TestSendMessage_Creates_Record(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chat.EXPECT().
		SendMessage(gomock.Any(), "viewer", "bob", "hello", "").
		Return(domain.Message{ID: uuid.New(), SenderID: "viewer", ReceiverID: "bob", Text: "hello"}, nil)

	resp := f.do(t, http.MethodPost, "/api/messages/send/bob", map[string]string{"text": "hello"}, true)
	req.Equal(http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	newMessage := body["newMessage"].(map[string]any)
	req.Equal("hello", newMessage["text"])
}

func TestSendMessage_Empty_Payload_Is_Bad_Request(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.chat.EXPECT().
		SendMessage(gomock.Any(), "viewer", "bob", "", "").
		Return(domain.Message{}, errors.ErrEmptyMessage)

	resp := f.do(t, http.MethodPost, "/api/messages/send/bob", map[string]string{}, true)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestMarkSeen_Rejects_Malformed_ID(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	resp := f.do(t, http.MethodPut, "/api/messages/seen/not-a-uuid", nil, true)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestMarkSeen_Unknown_Message(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	id := uuid.New()
	f.chat.EXPECT().MarkMessageSeen(id).Return(errors.ErrMessageNotFound)

	resp := f.do(t, http.MethodPut, "/api/messages/seen/"+id.String(), nil, true)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestSearch_Empty_Query_Short_Circuits(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/messages/search", nil, true)
	req.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	req.Empty(body["hits"])
}
