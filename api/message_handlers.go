package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"quickchat/errors"
)

// handleContacts returns every other user with the caller's unseen counter
// folded into each entry.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.chat.Contacts(UserIDFrom(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   contacts,
	})
}

// handleConversation returns the full history with the selected user and, as
// a side effect, marks their messages to the caller as seen.
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	otherID := mux.Vars(r)["id"]
	messages, err := s.chat.Conversation(UserIDFrom(r.Context()), otherID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"success":  true,
		"messages": messages,
	})
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var body sendMessageRequest
	if err := decode(r, &body); err != nil {
		s.respondError(w, errors.ErrEmptyMessage)
		return
	}

	receiverID := mux.Vars(r)["id"]
	message, err := s.chat.SendMessage(r.Context(), UserIDFrom(r.Context()), receiverID, body.Text, body.Image)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"success":    true,
		"newMessage": message,
	})
}

func (s *Server) handleMarkSeen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, errors.ErrMessageNotFound)
		return
	}

	if err := s.chat.MarkMessageSeen(id); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respond(w, http.StatusOK, map[string]any{
			"success": true,
			"hits":    []any{},
		})
		return
	}

	hits, err := s.chat.Search(r.Context(), UserIDFrom(r.Context()), query)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"success": true,
		"hits":    hits,
	})
}
