package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// GroloConfig возвращает настройки полной системы.
func (c *Client) GroloConfig(ctx context.Context, token string) (*models.GroloConfig, error) {
	const op = "backend.GroloConfig"
	var p groloConfigPayload
	if err := c.do(ctx, http.MethodGet, "/football/config", "/football/config", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg := p.toModel()
	return &cfg, nil
}

// UpdateGroloConfig сохраняет настройки полной системы и возвращает их в том виде,
// в каком их принял бэкенд.
func (c *Client) UpdateGroloConfig(ctx context.Context, token string, cfg models.GroloConfig) (*models.GroloConfig, error) {
	const op = "backend.UpdateGroloConfig"
	var p groloConfigPayload
	if err := c.do(ctx, http.MethodPut, "/football/config", "/football/config", token, cfg, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved := p.toModel()
	return &saved, nil
}

// MiniConfig возвращает настройки системы Mini.
func (c *Client) MiniConfig(ctx context.Context, token string) (*models.MiniConfig, error) {
	const op = "backend.MiniConfig"
	var p miniConfigPayload
	if err := c.do(ctx, http.MethodGet, "/football/mini/config", "/football/mini/config", token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg := p.toModel()
	return &cfg, nil
}

// UpdateMiniConfig сохраняет настройки системы Mini.
func (c *Client) UpdateMiniConfig(ctx context.Context, token string, cfg models.MiniConfig) (*models.MiniConfig, error) {
	const op = "backend.UpdateMiniConfig"
	var p miniConfigPayload
	if err := c.do(ctx, http.MethodPut, "/football/mini/config", "/football/mini/config", token, cfg, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved := p.toModel()
	return &saved, nil
}

// Matches возвращает матчи-кандидаты для системы.
func (c *Client) Matches(ctx context.Context, token string, system models.System) ([]models.Match, error) {
	const op = "backend.Matches"
	var p matchListPayload
	path := "/football/matches?system=" + url.QueryEscape(string(system))
	if err := c.do(ctx, http.MethodGet, "/football/matches", path, token, nil, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toMatches(p.Items), nil
}

// ExecuteBet исполняет ставку.
func (c *Client) ExecuteBet(ctx context.Context, token string, req models.BetRequest) (*models.BetResult, error) {
	const op = "backend.ExecuteBet"
	var p betResultPayload
	if err := c.do(ctx, http.MethodPost, "/football/bets", "/football/bets", token, req, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res := p.toModel()
	return &res, nil
}

type autoExecutionBody struct {
	System  models.System `json:"system"`
	Enabled bool          `json:"enabled"`
}

// SetAutoExecution включает или выключает автоматическое исполнение ставки.
// Само исполнение в 00:00 по Мадагаскару выполняет бэкенд.
func (c *Client) SetAutoExecution(ctx context.Context, token string, system models.System, enabled bool) error {
	const op = "backend.SetAutoExecution"
	body := autoExecutionBody{System: system, Enabled: enabled}
	if err := c.do(ctx, http.MethodPut, "/football/auto-execution", "/football/auto-execution", token, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
