// Package services содержит бизнес-логику управления подписками пользователей.
// Состояние подписки не хранится локально: каждое действие проверяется
// локальной политикой, выполняется бэкендом и перечитывается из него.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/grolo-gateway/internal/events"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/grolo-gateway/internal/metrics"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

// Backend определяет методы удалённого API, нужные для работы с подписками.
type Backend interface {
	// Subscription возвращает запись подписки пользователя.
	Subscription(ctx context.Context, token, user string) (*models.SubscriptionRecord, error)
	// ListSubscriptions возвращает подписки всех пользователей.
	ListSubscriptions(ctx context.Context, token string) ([]models.SubscriptionRecord, error)
	// Permissions возвращает права вызывающего.
	Permissions(ctx context.Context, token string) (*models.AdminPermissionSet, error)
	ActivatePaid(ctx context.Context, token, user string) error
	DeactivatePaid(ctx context.Context, token, user string) error
	ExtendTrial(ctx context.Context, token, user string, days int) error
}

// SubscriptionService реализует сценарии просмотра и изменения подписок.
type SubscriptionService struct {
	backend Backend
	engine  *policy.Engine
	events  events.Publisher
	log     *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(backend Backend, engine *policy.Engine, publisher events.Publisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		backend: backend,
		engine:  engine,
		events:  publisher,
		log:     log,
	}
}

// Status возвращает подписку user с отображением и действиями, доступными caller.
// Чужую подписку видит только тот, у кого есть доступ к панели администратора.
func (s *SubscriptionService) Status(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionView, error) {
	const op = "services.subscription.Status"

	perms, err := s.permissions(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sameUser := caller.Username == user
	if !sameUser {
		if err := policy.CheckAdminPanel(perms); err != nil {
			metrics.ObservePolicy("view", err)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	record, err := s.backend.Subscription(ctx, caller.Token, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view := s.view(*record, sameUser, perms)
	return &view, nil
}

// List возвращает подписки всех пользователей для панели администратора.
func (s *SubscriptionService) List(ctx context.Context, caller models.Caller) ([]models.SubscriptionView, error) {
	const op = "services.subscription.List"

	perms, err := s.permissions(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckAdminPanel(perms)
	metrics.ObservePolicy("list", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := s.backend.ListSubscriptions(ctx, caller.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	views := make([]models.SubscriptionView, 0, len(records))
	for _, record := range records {
		views = append(views, s.view(record, caller.Username == record.User, perms))
	}
	return views, nil
}

// Activate включает оплаченный доступ пользователю user.
func (s *SubscriptionService) Activate(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionView, error) {
	const op = "services.subscription.Activate"

	record, perms, err := s.load(ctx, caller, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckActivate(*record, perms)
	metrics.ObservePolicy("activate", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.ActivatePaid(ctx, caller.Token, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view, err := s.refresh(ctx, caller, user, perms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("paid access activated", slog.String("actor", caller.Username), slog.String("user", user))
	events.Emit(ctx, s.log, s.events, events.New(events.SubscriptionActivated, caller.Username, user, nil))
	return view, nil
}

// Deactivate отключает оплаченный доступ пользователю user.
func (s *SubscriptionService) Deactivate(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionView, error) {
	const op = "services.subscription.Deactivate"

	record, perms, err := s.load(ctx, caller, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckDeactivate(*record, caller.Username == user, perms)
	metrics.ObservePolicy("deactivate", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.DeactivatePaid(ctx, caller.Token, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view, err := s.refresh(ctx, caller, user, perms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("paid access deactivated", slog.String("actor", caller.Username), slog.String("user", user))
	events.Emit(ctx, s.log, s.events, events.New(events.SubscriptionDeactivated, caller.Username, user, nil))
	return view, nil
}

// Extend продлевает пробный период пользователю user на days дней.
func (s *SubscriptionService) Extend(ctx context.Context, caller models.Caller, user string, days int) (*models.SubscriptionView, error) {
	const op = "services.subscription.Extend"

	// диапазон проверяется до похода в бэкенд
	if err := policy.ValidateTrialExtension(days); err != nil {
		metrics.ObservePolicy("extend", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record, perms, err := s.load(ctx, caller, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = policy.CheckExtend(*record, days, perms)
	metrics.ObservePolicy("extend", err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.backend.ExtendTrial(ctx, caller.Token, user, days); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view, err := s.refresh(ctx, caller, user, perms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trial extended", slog.String("actor", caller.Username), slog.String("user", user), slog.Int("days", days))
	events.Emit(ctx, s.log, s.events, events.New(events.SubscriptionExtended, caller.Username, user, map[string]any{"days": days}))
	return view, nil
}

// permissions запрашивает права у бэкенда. Обычный пользователь прав не имеет,
// и эндпоинт администратора для него не вызывается.
func (s *SubscriptionService) permissions(ctx context.Context, caller models.Caller) (models.AdminPermissionSet, error) {
	if !caller.Role.IsAdmin() {
		return models.AdminPermissionSet{}, nil
	}
	perms, err := s.backend.Permissions(ctx, caller.Token)
	if err != nil {
		return models.AdminPermissionSet{}, err
	}
	return *perms, nil
}

func (s *SubscriptionService) load(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionRecord, models.AdminPermissionSet, error) {
	perms, err := s.permissions(ctx, caller)
	if err != nil {
		return nil, models.AdminPermissionSet{}, err
	}
	record, err := s.backend.Subscription(ctx, caller.Token, user)
	if err != nil {
		return nil, models.AdminPermissionSet{}, err
	}
	return record, perms, nil
}

func (s *SubscriptionService) refresh(ctx context.Context, caller models.Caller, user string, perms models.AdminPermissionSet) (*models.SubscriptionView, error) {
	record, err := s.backend.Subscription(ctx, caller.Token, user)
	if err != nil {
		return nil, err
	}
	view := s.view(*record, caller.Username == user, perms)
	return &view, nil
}

func (s *SubscriptionService) view(record models.SubscriptionRecord, sameUser bool, perms models.AdminPermissionSet) models.SubscriptionView {
	if err := policy.CheckRecord(record); err != nil {
		s.log.Warn("inconsistent subscription record", slog.String("user", record.User), sl.Err(err))
	}
	return models.SubscriptionView{
		Record:  record,
		Display: s.engine.Classify(record),
		Actions: policy.ResolveActions(record, sameUser, perms),
	}
}
