// Package promote реализует HTTP-обработчик повышения пользователя до admin.
package promote

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/response"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Handler обрабатывает POST /admin/users/{user}/promote.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает смену роли пользователя.
type Service interface {
	Promote(ctx context.Context, caller models.Caller, username string) (*models.UserInfo, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает пользователя, перечитанного из бэкенда после смены роли.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.promote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}
	username := chi.URLParam(r, "user")

	user, err := h.service.Promote(r.Context(), caller, username)
	if err != nil {
		log.Error("failed to promote user", slog.String("user", username), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user role changed", slog.String("user", username), slog.String("role", string(user.Role)))
	render.JSON(w, r, response.StatusOKWithData(user))
}
