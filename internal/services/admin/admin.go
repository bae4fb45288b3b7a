// Package services содержит бизнес-логику управления ролями пользователей.
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

// Backend определяет методы удалённого API для панели администратора.
type Backend interface {
	Permissions(ctx context.Context, token string) (*models.AdminPermissionSet, error)
	Users(ctx context.Context, token string) ([]models.UserInfo, error)
	User(ctx context.Context, token, username string) (*models.UserInfo, error)
	Promote(ctx context.Context, token, username string) error
	Demote(ctx context.Context, token, username string) error
}

// AdminService реализует сценарии панели администратора.
type AdminService struct {
	backend Backend
	events  events.Publisher
	log     *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(backend Backend, publisher events.Publisher, log *slog.Logger) *AdminService {
	return &AdminService{
		backend: backend,
		events:  publisher,
		log:     log,
	}
}

// Permissions возвращает права вызывающего.
func (s *AdminService) Permissions(ctx context.Context, caller models.Caller) (*models.AdminPermissionSet, error) {
	const op = "services.admin.Permissions"
	if !caller.Role.IsAdmin() {
		return &models.AdminPermissionSet{}, nil
	}
	perms, err := s.backend.Permissions(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return perms, nil
}

// Users возвращает список пользователей.
func (s *AdminService) Users(ctx context.Context, caller models.Caller) ([]models.UserInfo, error) {
	const op = "services.admin.Users"
	perms, err := s.Permissions(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckAdminPanel(*perms)
	metrics.ObservePolicy("users", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.backend.Users(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Promote повышает пользователя до admin и возвращает его обновлённые данные.
func (s *AdminService) Promote(ctx context.Context, caller models.Caller, username string) (*models.UserInfo, error) {
	const op = "services.admin.Promote"

	target, perms, err := s.load(ctx, caller, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckPromote(*target, *perms)
	metrics.ObservePolicy("promote", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.Promote(ctx, caller.Token, username); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.backend.User(ctx, caller.Token, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user promoted", slog.String("actor", caller.Username), slog.String("user", username))
	events.Emit(ctx, s.log, s.events, events.New(events.UserPromoted, caller.Username, username,
		map[string]any{"role": string(updated.Role)}))
	return updated, nil
}

// Demote понижает администратора до user и возвращает его обновлённые данные.
func (s *AdminService) Demote(ctx context.Context, caller models.Caller, username string) (*models.UserInfo, error) {
	const op = "services.admin.Demote"

	target, perms, err := s.load(ctx, caller, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckDemote(caller.Username, *target, *perms)
	metrics.ObservePolicy("demote", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.Demote(ctx, caller.Token, username); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.backend.User(ctx, caller.Token, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user demoted", slog.String("actor", caller.Username), slog.String("user", username))
	events.Emit(ctx, s.log, s.events, events.New(events.UserDemoted, caller.Username, username,
		map[string]any{"role": string(updated.Role)}))
	return updated, nil
}

func (s *AdminService) load(ctx context.Context, caller models.Caller, username string) (*models.UserInfo, *models.AdminPermissionSet, error) {
	perms, err := s.Permissions(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.backend.User(ctx, caller.Token, username)
	if err != nil {
		return nil, nil, err
	}
	return target, perms, nil
}
