package api

import (
	"net/http"

	"quickchat/errors"
)

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := decode(r, &body); err != nil {
		s.respondError(w, errors.ErrMissingDetails)
		return
	}

	user, token, err := s.auth.Register(body.FullName, body.Email, body.Password, body.Bio)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"success":  true,
		"userData": user,
		"token":    token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decode(r, &body); err != nil {
		s.respondError(w, errors.ErrInvalidCredentials)
		return
	}

	user, token, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"success":  true,
		"userData": user,
		"token":    token,
	})
}

func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CheckAuth(UserIDFrom(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"success":  true,
		"userData": user,
	})
}

type updateProfileRequest struct {
	FullName   string `json:"fullName"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body updateProfileRequest
	if err := decode(r, &body); err != nil {
		s.respondError(w, errors.ErrMissingDetails)
		return
	}

	user, err := s.auth.UpdateProfile(UserIDFrom(r.Context()), body.FullName, body.Bio, body.ProfilePic)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"success":  true,
		"userData": user,
	})
}
