// Package services содержит логику настроек и исполнения футбольных ставок.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/grolo-gateway/internal/events"
	"github.com/magabrotheeeer/grolo-gateway/internal/metrics"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

// Backend определяет методы удалённого API для ставок.
type Backend interface {
	GroloConfig(ctx context.Context, token string) (*models.GroloConfig, error)
	UpdateGroloConfig(ctx context.Context, token string, cfg models.GroloConfig) (*models.GroloConfig, error)
	MiniConfig(ctx context.Context, token string) (*models.MiniConfig, error)
	UpdateMiniConfig(ctx context.Context, token string, cfg models.MiniConfig) (*models.MiniConfig, error)
	Matches(ctx context.Context, token string, system models.System) ([]models.Match, error)
	ExecuteBet(ctx context.Context, token string, req models.BetRequest) (*models.BetResult, error)
	SetAutoExecution(ctx context.Context, token string, system models.System, enabled bool) error
}

// BettingService проверяет настройки и ставки до отправки в бэкенд.
type BettingService struct {
	backend Backend
	events  events.Publisher
	log     *slog.Logger
}

// NewBettingService создает новый экземпляр BettingService.
func NewBettingService(backend Backend, publisher events.Publisher, log *slog.Logger) *BettingService {
	return &BettingService{
		backend: backend,
		events:  publisher,
		log:     log,
	}
}

// GroloConfig возвращает настройки полной системы.
func (s *BettingService) GroloConfig(ctx context.Context, caller models.Caller) (*models.GroloConfig, error) {
	const op = "services.betting.GroloConfig"
	cfg, err := s.backend.GroloConfig(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

// UpdateGroloConfig проверяет и сохраняет настройки полной системы.
func (s *BettingService) UpdateGroloConfig(ctx context.Context, caller models.Caller, cfg models.GroloConfig) (*models.GroloConfig, error) {
	const op = "services.betting.UpdateGroloConfig"
	err := policy.ValidateGroloConfig(cfg)
	metrics.ObservePolicy("grolo_config", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved, err := s.backend.UpdateGroloConfig(ctx, caller.Token, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	events.Emit(ctx, s.log, s.events, events.New(events.ConfigUpdated, caller.Username, string(models.SystemGrolo), nil))
	return saved, nil
}

// MiniConfig возвращает настройки системы Mini.
func (s *BettingService) MiniConfig(ctx context.Context, caller models.Caller) (*models.MiniConfig, error) {
	const op = "services.betting.MiniConfig"
	cfg, err := s.backend.MiniConfig(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

// UpdateMiniConfig проверяет и сохраняет настройки системы Mini.
func (s *BettingService) UpdateMiniConfig(ctx context.Context, caller models.Caller, cfg models.MiniConfig) (*models.MiniConfig, error) {
	const op = "services.betting.UpdateMiniConfig"
	err := policy.ValidateMiniConfig(cfg)
	metrics.ObservePolicy("mini_config", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved, err := s.backend.UpdateMiniConfig(ctx, caller.Token, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	events.Emit(ctx, s.log, s.events, events.New(events.ConfigUpdated, caller.Username, string(models.SystemMini), nil))
	return saved, nil
}

// Matches возвращает матчи-кандидаты для системы.
func (s *BettingService) Matches(ctx context.Context, caller models.Caller, system models.System) ([]models.Match, error) {
	const op = "services.betting.Matches"
	if err := policy.ValidateSystem(system); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	matches, err := s.backend.Matches(ctx, caller.Token, system)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return matches, nil
}

// ExecuteBet проверяет размер ставки и исполняет её.
func (s *BettingService) ExecuteBet(ctx context.Context, caller models.Caller, req models.BetRequest) (*models.BetResult, error) {
	const op = "services.betting.ExecuteBet"
	err := policy.ValidateSystem(req.System)
	if err == nil {
		err = policy.ValidateStake(req.Stake)
	}
	metrics.ObservePolicy("bet", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.backend.ExecuteBet(ctx, caller.Token, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("bet executed",
		slog.String("user", caller.Username),
		slog.String("bet_id", res.BetID),
		slog.String("system", string(res.System)),
		slog.Int("stake", res.Stake),
	)
	events.Emit(ctx, s.log, s.events, events.New(events.BetExecuted, caller.Username, res.BetID, map[string]any{
		"system":     string(res.System),
		"stake":      res.Stake,
		"total_odds": res.TotalOdds,
	}))
	return res, nil
}

// SetAutoExecution включает или выключает ежедневное автоисполнение ставки.
func (s *BettingService) SetAutoExecution(ctx context.Context, caller models.Caller, system models.System, enabled bool) error {
	const op = "services.betting.SetAutoExecution"
	if err := policy.ValidateSystem(system); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.SetAutoExecution(ctx, caller.Token, system, enabled); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	events.Emit(ctx, s.log, s.events, events.New(events.AutoExecutionToggled, caller.Username, string(system),
		map[string]any{"enabled": enabled}))
	return nil
}
