package auth

import (
	"context"
	"errors"
	"log"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
	"roomchat/backend/internal/token"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service handles the business logic for authentication.
type Service struct {
	Storage   storage.Storage
	Authority *token.Authority
}

// NewService creates a new auth service.
func NewService(s storage.Storage, authority *token.Authority) *Service {
	return &Service{Storage: s, Authority: authority}
}

// Register creates a new active USER identity. A duplicate email surfaces
// as a conflict from the storage layer's unique index.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := ValidateRegister(in); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Infrastructure("failed to hash password", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.Storage.CreateUser(user); err != nil {
		return nil, err
	}

	log.Printf("INFO: New user registered (id=%s)", user.ID)
	return user, nil
}

// Login verifies the credentials and issues an access+refresh token pair.
// Unknown email, wrong password and deactivated accounts all yield the same
// generic authentication error.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := ComparePassword(password, user.PasswordHash)
	if err != nil || !ok || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.Authority.IssuePair(ctx, user.ID, map[string]any{"role": user.Role})
	if err != nil {
		return nil, apperrors.Infrastructure("failed to issue tokens", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token into a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	access, rotated, err := s.Authority.Refresh(ctx, refreshToken)
	if err != nil {
		var tokenErr *token.TokenError
		if errors.As(err, &tokenErr) {
			return nil, apperrors.Authentication(tokenErr.Reason.String())
		}
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: rotated}, nil
}

// Logout revokes the presented refresh token. Outstanding access tokens
// keep working until they expire.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.Authority.Revoke(ctx, refreshToken); err != nil {
		var tokenErr *token.TokenError
		if errors.As(err, &tokenErr) {
			return apperrors.Authentication(tokenErr.Reason.String())
		}
		return err
	}
	return nil
}

// CurrentUser resolves the caller's identity record.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Storage.GetUserByID(userID)
}
