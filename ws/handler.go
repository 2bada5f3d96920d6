// Package ws terminates live websocket connections and bridges them to the
// delivery path.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"quickchat/auth"
	"quickchat/domain/event"
	"quickchat/runtime"
	"quickchat/sink"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// envelope is the wire format pushed to clients: the event name plus its
// payload.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Handler struct {
	log          *slog.Logger
	orchestrator *runtime.Orchestrator
	upgrader     websocket.Upgrader
	bufferSize   int
	sinkTimeout  time.Duration
}

func NewHandler(log *slog.Logger, orchestrator *runtime.Orchestrator,
	bufferSize int, sinkTimeout time.Duration) *Handler {
	return &Handler{
		log:          log,
		orchestrator: orchestrator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client connects cross-origin during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		bufferSize:  bufferSize,
		sinkTimeout: sinkTimeout,
	}
}

// ServeHTTP authenticates the token query parameter, upgrades the connection
// and registers it as the user's single live connection. The connection stays
// open until the client goes away or its sink saturates.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectionSink := sink.NewChannelSink(h.log, h.bufferSize, h.sinkTimeout, cancel)
	h.orchestrator.Connect(claims.UserID, connectionSink)
	defer h.orchestrator.Disconnect(claims.UserID, connectionSink)

	h.log.Info("Websocket connected", "user_id", claims.UserID)
	defer h.log.Info("Websocket disconnected", "user_id", claims.UserID)

	go h.writePump(ctx, cancel, conn, connectionSink)
	h.readLoop(cancel, conn)
}

// readLoop drains inbound frames. Clients only send control traffic; the loop
// exists to notice the close and to keep the pong handler running.
func (h *Handler) readLoop(cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(ctx context.Context, cancel context.CancelFunc,
	conn *websocket.Conn, connectionSink *sink.ChannelSink) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case evt := <-connectionSink.Events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(marshalEvent(evt)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// marshalEvent flattens each domain event to its client payload.
func marshalEvent(evt event.DomainEvent) envelope {
	switch e := evt.(type) {
	case event.NewMessage:
		return envelope{Event: e.EventName(), Data: e.Message}
	case event.PresenceChanged:
		return envelope{Event: e.EventName(), Data: e.Online}
	default:
		return envelope{Event: evt.EventName(), Data: evt}
	}
}
