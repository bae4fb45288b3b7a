package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Permissions возвращает права владельца токена, вычисленные бэкендом из его роли.
func (c *Client) Permissions(ctx context.Context, token string) (*models.AdminPermissionSet, error) {
	const op = "backend.Permissions"
	var p permissionsPayload
	if err := c.do(ctx, http.MethodGet, "/admin/permissions", "/admin/permissions", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	perms := p.toModel()
	return &perms, nil
}

// Users возвращает список пользователей.
func (c *Client) Users(ctx context.Context, token string) ([]models.UserInfo, error) {
	const op = "backend.Users"
	var p userListPayload
	if err := c.do(ctx, http.MethodGet, "/admin/users", "/admin/users", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users := make([]models.UserInfo, 0, len(p.Items))
	for _, item := range p.Items {
		users = append(users, item.toModel())
	}
	return users, nil
}

// User возвращает пользователя по имени.
func (c *Client) User(ctx context.Context, token, username string) (*models.UserInfo, error) {
	const op = "backend.User"
	var p userPayload
	path := "/admin/users/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, "/admin/users/{user}", path, token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := p.toModel()
	return &u, nil
}

// Promote повышает пользователя до admin.
func (c *Client) Promote(ctx context.Context, token, username string) error {
	const op = "backend.Promote"
	path := "/admin/users/" + url.PathEscape(username) + "/promote"
	if err := c.do(ctx, http.MethodPost, "/admin/users/{user}/promote", path, token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Demote понижает admin до user.
func (c *Client) Demote(ctx context.Context, token, username string) error {
	const op = "backend.Demote"
	path := "/admin/users/" + url.PathEscape(username) + "/demote"
	if err := c.do(ctx, http.MethodPost, "/admin/users/{user}/demote", path, token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
