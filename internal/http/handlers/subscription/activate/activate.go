// Package activate реализует HTTP-обработчик включения оплаченного доступа пользователю.
package activate

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

// Handler обрабатывает POST /subscriptions/{user}/activate.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает действие над подпиской.
type Service interface {
	Activate(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionView, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает подписку, перечитанную из бэкенда после действия.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.activate"

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
	user := chi.URLParam(r, "user")

	view, err := h.service.Activate(r.Context(), caller, user)
	if err != nil {
		log.Error("failed to activate paid access", slog.String("user", user), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("paid access activated", slog.String("user", user))
	render.JSON(w, r, response.StatusOKWithData(view))
}
