package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Subscription возвращает текущую запись подписки пользователя.
func (c *Client) Subscription(ctx context.Context, token, user string) (*models.SubscriptionRecord, error) {
	const op = "backend.Subscription"
	var p subscriptionPayload
	path := "/subscriptions/" + url.PathEscape(user)
	if err := c.do(ctx, http.MethodGet, "/subscriptions/{user}", path, token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r := p.toModel()
	return &r, nil
}

// ListSubscriptions возвращает подписки всех пользователей для панели администратора.
func (c *Client) ListSubscriptions(ctx context.Context, token string) ([]models.SubscriptionRecord, error) {
	const op = "backend.ListSubscriptions"
	var p subscriptionListPayload
	if err := c.do(ctx, http.MethodGet, "/admin/subscriptions", "/admin/subscriptions", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records := make([]models.SubscriptionRecord, 0, len(p.Items))
	for _, item := range p.Items {
		records = append(records, item.toModel())
	}
	return records, nil
}

// ActivatePaid включает оплаченный доступ пользователю.
func (c *Client) ActivatePaid(ctx context.Context, token, user string) error {
	const op = "backend.ActivatePaid"
	path := "/admin/subscriptions/" + url.PathEscape(user) + "/activate"
	if err := c.do(ctx, http.MethodPost, "/admin/subscriptions/{user}/activate", path, token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeactivatePaid отключает оплаченный доступ пользователю.
func (c *Client) DeactivatePaid(ctx context.Context, token, user string) error {
	const op = "backend.DeactivatePaid"
	path := "/admin/subscriptions/" + url.PathEscape(user) + "/deactivate"
	if err := c.do(ctx, http.MethodPost, "/admin/subscriptions/{user}/deactivate", path, token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type extendBody struct {
	Days int `json:"days"`
}

// ExtendTrial продлевает пробный период пользователя на days дней.
func (c *Client) ExtendTrial(ctx context.Context, token, user string, days int) error {
	const op = "backend.ExtendTrial"
	path := "/admin/subscriptions/" + url.PathEscape(user) + "/extend"
	if err := c.do(ctx, http.MethodPost, "/admin/subscriptions/{user}/extend", path, token, extendBody{Days: days}, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
