package ws_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"quickchat/auth"
	"quickchat/observability"
	"quickchat/runtime"
	"quickchat/runtime/workers"
	"quickchat/ws"
)

func startServer(t *testing.T) (*httptest.Server, *runtime.Orchestrator) {
	t.Helper()

	supervisor := workers.NewSupervisor(slog.Default(), time.Second)
	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor,
		runtime.NewRegistry(), nil, nil, observability.NewStats(), 16, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = orchestrator.Start(ctx) }()
	t.Cleanup(cancel)

	server := httptest.NewServer(ws.NewHandler(slog.Default(), orchestrator, 16, time.Second))
	t.Cleanup(server.Close)
	return server, orchestrator
}

func TestHandler_Rejects_Missing_Token(t *testing.T) {
	req := require.New(t)
	server, _ := startServer(t)

	resp, err := http.Get(server.URL)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_Connects_And_Receives_Presence(t *testing.T) {
	req := require.New(t)
	server, _ := startServer(t)

	token, err := auth.GenerateToken("alice", time.Hour)
	req.NoError(err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	req.NoError(err)
	defer conn.Close()

	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, payload, err := conn.ReadMessage()
	req.NoError(err)

	var pushed struct {
		Event string   `json:"event"`
		Data  []string `json:"data"`
	}
	req.NoError(json.Unmarshal(payload, &pushed))
	req.Equal("online-users", pushed.Event)
	req.Contains(pushed.Data, "alice")
}

func TestHandler_Disconnect_Updates_Presence(t *testing.T) {
	req := require.New(t)
	server, orchestrator := startServer(t)

	token, err := auth.GenerateToken("bob", time.Hour)
	req.NoError(err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	req.NoError(err)

	req.Eventually(func() bool {
		ids := orchestrator.OnlineUserIDs()
		return len(ids) == 1 && ids[0] == "bob"
	}, 2*time.Second, 10*time.Millisecond)

	req.NoError(conn.Close())
	req.Eventually(func() bool {
		return len(orchestrator.OnlineUserIDs()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
