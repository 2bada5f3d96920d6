// Package api exposes the HTTP surface: authentication, contacts,
// conversations and search.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"quickchat/errors"
	"quickchat/services"
)

type Server struct {
	log  *slog.Logger
	auth services.IAuthService
	chat services.IChatService
}

func NewServer(log *slog.Logger, auth services.IAuthService, chat services.IChatService) *Server {
	return &Server{log: log, auth: auth, chat: chat}
}

// Router wires every REST route. The websocket endpoint and static uploads
// are mounted by the caller on the same mux.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/auth/signup", s.handleSignup).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	router.Handle("/api/auth/check", s.requireAuth(s.handleCheckAuth)).Methods(http.MethodGet)
	router.Handle("/api/auth/update-profile", s.requireAuth(s.handleUpdateProfile)).Methods(http.MethodPut)

	router.Handle("/api/messages/users", s.requireAuth(s.handleContacts)).Methods(http.MethodGet)
	router.Handle("/api/messages/search", s.requireAuth(s.handleSearch)).Methods(http.MethodGet)
	router.Handle("/api/messages/send/{id}", s.requireAuth(s.handleSendMessage)).Methods(http.MethodPost)
	router.Handle("/api/messages/seen/{id}", s.requireAuth(s.handleMarkSeen)).Methods(http.MethodPut)
	router.Handle("/api/messages/{id}", s.requireAuth(s.handleConversation)).Methods(http.MethodGet)

	return router
}

// respond writes the JSON envelope every endpoint shares: a success flag plus
// endpoint-specific fields.
func (s *Server) respond(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.respond(w, errors.MapToStatus(err), map[string]any{
		"success": false,
		"message": err.Error(),
	})
}

func decode(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
