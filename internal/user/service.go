package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// Service issues API tokens. Callers of the REST API are trusted frontends
// (the bot itself, an admin panel) that share one API key and act on behalf
// of a registered Telegram user.
type Service interface {
	IssueToken(ctx context.Context, req TokenRequest) (*models.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *models.User, error)
}

type service struct {
	repo       Repository
	jwtSecret  string
	apiKeyHash string
}

func NewService(repo Repository, jwtSecret, apiKeyHash string) Service {
	return &service{
		repo:       repo,
		jwtSecret:  jwtSecret,
		apiKeyHash: apiKeyHash,
	}
}

func (s *service) IssueToken(ctx context.Context, req TokenRequest) (*models.User, string, string, error) {
	if s.apiKeyHash == "" || !auth.CheckSecret(s.apiKeyHash, req.APIKey) {
		return nil, "", "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByTelegramName(ctx, req.TelegramName)
	if err != nil {
		return nil, "", "", err
	}
	if u == nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(identity(u), s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return u, accessToken, refreshToken, nil
}

// RefreshToken reloads the user so a role change takes effect on refresh.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *models.User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidRefresh, err)
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrUserNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(identity(u), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, u, nil
}

func identity(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, TelegramName: u.TelegramName, Role: u.Role.String()}
}
