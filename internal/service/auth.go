package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/crypto"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and the current user lookup.
type AuthService struct {
	users  UserStore
	tokens *crypto.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *crypto.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new user account and returns an access token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return model.TokenResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return model.TokenResponse{}, validate.Errors{{Msg: "password must be at most 72 bytes", Param: "password", Location: "body"}}
		}
		return model.TokenResponse{}, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Avatar:       crypto.GravatarURL(req.Email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.TokenResponse{}, ErrUserExists
		}
		return model.TokenResponse{}, err
	}
	log.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")

	return s.issue(user.ID)
}

// Login authenticates a user and returns an access token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// CurrentUser returns the account of userID without its password hash.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.ToResponse(), nil
}

func (s *AuthService) issue(userID string) (model.TokenResponse, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return model.TokenResponse{}, err
	}
	return model.TokenResponse{Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
