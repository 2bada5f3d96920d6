//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
// Package services exposes the application use cases consumed by the HTTP
// and websocket layers.
package services

import (
	"log/slog"
	"time"

	"quickchat/auth"
	"quickchat/domain"
	"quickchat/errors"
	"quickchat/infrastructure/storage"
	"quickchat/media"
)

type IAuthService interface {
	Register(fullName, email, password, bio string) (domain.User, string, error)
	Login(email, password string) (domain.User, string, error)
	CheckAuth(userID string) (domain.User, error)
	UpdateProfile(userID, fullName, bio, profilePicDataURL string) (domain.User, error)
}

var _ IAuthService = (*AuthService)(nil)

type AuthService struct {
	log           *slog.Logger
	users         storage.IUserRepository
	uploads       *media.Store
	tokenDuration time.Duration
}

func NewAuthService(log *slog.Logger, users storage.IUserRepository,
	uploads *media.Store, tokenDuration time.Duration) *AuthService {
	return &AuthService{log: log, users: users, uploads: uploads, tokenDuration: tokenDuration}
}

// Register creates an account and returns the user with a fresh token so the
// client is signed in immediately after signup.
func (s *AuthService) Register(fullName, email, password, bio string) (domain.User, string, error) {
	err := auth.ValidateSignup(auth.SignupRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
		Bio:      bio,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	id, err := s.users.CreateUser(email, fullName, bio, hash)
	if err != nil {
		return domain.User{}, "", err
	}
	s.log.Info("New account created", "user_id", id)

	token, err := auth.GenerateToken(id, s.tokenDuration)
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}

	user, err := s.users.GetUserByID(id)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login verifies the credentials. Unknown email and wrong password both map
// to ErrInvalidCredentials so the response does not leak which one failed.
func (s *AuthService) Login(email, password string) (domain.User, string, error) {
	record, err := s.users.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	ok, err := auth.ComparePassword(password, record.PasswordHash)
	if err != nil || !ok {
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(record.ID, s.tokenDuration)
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}

	user, err := s.users.GetUserByID(record.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) CheckAuth(userID string) (domain.User, error) {
	return s.users.GetUserByID(userID)
}

// UpdateProfile stores the new picture (when one was sent) then updates the
// editable fields. An empty data URL keeps the current picture.
func (s *AuthService) UpdateProfile(userID, fullName, bio, profilePicDataURL string) (domain.User, error) {
	var picURL string
	if profilePicDataURL != "" {
		url, err := s.uploads.SaveDataURL(profilePicDataURL)
		if err != nil {
			return domain.User{}, err
		}
		picURL = url
	}
	return s.users.UpdateProfile(userID, fullName, bio, picURL)
}
