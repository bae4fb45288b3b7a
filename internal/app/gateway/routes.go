package gateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/admin/demote"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/admin/permissions"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/admin/promote"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/football/autoexec"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/football/bet"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/football/groloconfig"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/football/matches"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/football/miniconfig"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/health"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/subscription/activate"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/subscription/deactivate"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/subscription/extend"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	adminservice "github.com/magabrotheeeer/grolo-gateway/internal/services/admin"
	authservice "github.com/magabrotheeeer/grolo-gateway/internal/services/auth"
	bettingservice "github.com/magabrotheeeer/grolo-gateway/internal/services/betting"
	subservice "github.com/magabrotheeeer/grolo-gateway/internal/services/subscription"
)

// Services набор сервисов, на которые опираются маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Subscription *subservice.SubscriptionService
	Admin        *adminservice.AdminService
	Betting      *bettingservice.BettingService
	// BetLimiter ограничивает частоту исполнения ставок.
	BetLimiter *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))

			r.Get("/me", me.New(logger, svc.Auth).ServeHTTP)

			r.Get("/subscriptions", list.New(logger, svc.Subscription).ServeHTTP)
			r.Get("/subscriptions/{user}", status.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/subscriptions/{user}/activate", activate.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/subscriptions/{user}/deactivate", deactivate.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/subscriptions/{user}/extend", extend.New(logger, svc.Subscription).ServeHTTP)

			r.Get("/admin/users", users.New(logger, svc.Admin).ServeHTTP)
			r.Get("/admin/permissions", permissions.New(logger, svc.Admin).ServeHTTP)
			r.Post("/admin/users/{user}/promote", promote.New(logger, svc.Admin).ServeHTTP)
			r.Post("/admin/users/{user}/demote", demote.New(logger, svc.Admin).ServeHTTP)

			grolo := groloconfig.New(logger, svc.Betting)
			r.Get("/football/config", grolo.Get)
			r.Put("/football/config", grolo.Update)
			mini := miniconfig.New(logger, svc.Betting)
			r.Get("/football/mini/config", mini.Get)
			r.Put("/football/mini/config", mini.Update)
			r.Get("/football/matches", matches.New(logger, svc.Betting).ServeHTTP)
			r.Put("/football/auto-execution", autoexec.New(logger, svc.Betting).ServeHTTP)

			r.With(middlewarectx.RateLimitMiddleware(logger, svc.BetLimiter)).
				Post("/football/bets", bet.New(logger, svc.Betting).ServeHTTP)
		})
	})
}
