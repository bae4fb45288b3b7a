// Package gateway собирает HTTP-шлюз Grolo: клиент бэкенда, сервисы,
// публикацию аудита и маршруты.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/grolo-gateway/internal/backend"
	"github.com/magabrotheeeer/grolo-gateway/internal/config"
	"github.com/magabrotheeeer/grolo-gateway/internal/events"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
	adminservice "github.com/magabrotheeeer/grolo-gateway/internal/services/admin"
	authservice "github.com/magabrotheeeer/grolo-gateway/internal/services/auth"
	bettingservice "github.com/magabrotheeeer/grolo-gateway/internal/services/betting"
	subservice "github.com/magabrotheeeer/grolo-gateway/internal/services/subscription"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	amqp   *amqp.Connection
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway.New: backend base url is empty")
	}
	client := backend.New(cfg.BaseURL, cfg.TimeoutBackend)
	publisher, conn := newPublisher(cfg, logger)

	svc := Services{
		Auth:         authservice.NewAuthService(client, jwt.NewParser(cfg.JWTSecretKey), logger),
		Subscription: subservice.NewSubscriptionService(client, policy.New(cfg.TrialDays), publisher, logger),
		Admin:        adminservice.NewAdminService(client, publisher, logger),
		Betting:      bettingservice.NewBettingService(client, publisher, logger),
		BetLimiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		amqp:   conn,
	}, nil
}

// newPublisher подключается к RabbitMQ. Без URL или при недоступном брокере
// шлюз работает без аудита: публикация не должна блокировать действия.
func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, *amqp.Connection) {
	if cfg.RabbitMQURL == "" {
		logger.Info("rabbitmq is not configured, audit events are disabled")
		return events.NopPublisher{}, nil
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq is unavailable, audit events are disabled", sl.Err(err))
		return events.NopPublisher{}, nil
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQExchange, rabbitmq.GetAuditQueues())
	if err != nil {
		logger.Warn("failed to setup rabbitmq channel, audit events are disabled", sl.Err(err))
		_ = conn.Close()
		return events.NopPublisher{}, nil
	}
	logger.Info("audit events are published", slog.String("exchange", cfg.RabbitMQExchange))
	return events.NewAMQPPublisher(ch, cfg.RabbitMQExchange), conn
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeBroker()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeBroker()
		return err
	}
}

func (a *App) closeBroker() {
	if a.amqp == nil {
		return
	}
	if err := a.amqp.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
	}
}
