package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login выполняет вход и возвращает токен доступа с данными пользователя.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	const op = "backend.Login"
	var p loginPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", "", loginBody{Username: username, Password: password}, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.LoginResult{
		AccessToken: *p.AccessToken,
		TokenType:   p.TokenType,
		User:        p.User.toModel(),
	}, nil
}

// Me возвращает пользователя, которому принадлежит токен.
func (c *Client) Me(ctx context.Context, token string) (*models.UserInfo, error) {
	const op = "backend.Me"
	var p userPayload
	if err := c.do(ctx, http.MethodGet, "/users/me", "/users/me", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := p.toModel()
	return &u, nil
}
