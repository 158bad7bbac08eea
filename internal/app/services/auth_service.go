package services

import (
	"context"
	"errors"
	"strings"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// AuthService authenticates users and resolves bearer tokens. Pluggable so
// the credential scheme can change without touching the middleware.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	store Store
}

// NewAuthService creates the store-backed AuthService.
func NewAuthService(store Store) AuthService {
	return &authService{store: store}
}

// Login checks the credential pair and returns the bearer envelope. The
// access token is the user id itself; the legacy clients this backend serves
// store and replay it verbatim. Passwords are compared as plain text to stay
// compatible with the imported account data.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	userID := strings.TrimSpace(req.UserID)

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != req.Password {
		logger.Warn().Str("userID", userID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return &dto.LoginResponse{
		AccessToken: user.ID,
		TokenType:   "bearer",
		Role:        string(user.Role),
		UserID:      user.ID,
	}, nil
}

// ResolveToken maps a bearer token back to its account.
func (s *authService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	user, err := s.store.Users().GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}
