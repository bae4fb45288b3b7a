// Package services содержит логику бизнес-уровня для входа и проверки вызывающего пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/grolo-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Backend описывает методы удалённого API, нужные для аутентификации.
type Backend interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Me(ctx context.Context, token string) (*models.UserInfo, error)
}

// TokenParser разбирает токен, выданный бэкендом.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// AuthService отвечает за вход через бэкенд и валидацию JWT.
type AuthService struct {
	backend Backend
	parser  TokenParser
	log     *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(backend Backend, parser TokenParser, log *slog.Logger) *AuthService {
	return &AuthService{
		backend: backend,
		parser:  parser,
		log:     log,
	}
}

// Login передаёт учётные данные бэкенду. Пароль шлюз не проверяет и не хранит.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	const op = "services.auth.Login"
	res, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user logged in", slog.String("username", res.User.Username), slog.String("role", string(res.User.Role)))
	return res, nil
}

// ValidateToken проверяет JWT и возвращает вызывающего пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.Caller, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.parser.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	role := models.Role(claims.Role)
	if !role.IsValid() {
		role = models.RoleUser
	}
	return &models.Caller{
		Username: claims.Username,
		Role:     role,
		Token:    token,
	}, nil
}

// Me возвращает актуальные данные вызывающего пользователя из бэкенда.
func (s *AuthService) Me(ctx context.Context, caller models.Caller) (*models.UserInfo, error) {
	const op = "services.auth.Me"
	user, err := s.backend.Me(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
