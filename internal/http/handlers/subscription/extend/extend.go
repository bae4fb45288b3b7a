// Package extend реализует HTTP-обработчик продления пробного периода.
package extend

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

// Handler обрабатывает POST /subscriptions/{user}/extend.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает продление пробного периода.
type Service interface {
	Extend(ctx context.Context, caller models.Caller, user string, days int) (*models.SubscriptionView, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP декодирует количество дней и передаёт его сервису.
// Отсутствующее поле days равно нулю и отклоняется политикой с кодом 422.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.extend"

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

	var req models.ExtendTrialRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	view, err := h.service.Extend(r.Context(), caller, user, req.Days)
	if err != nil {
		log.Error("failed to extend trial", slog.String("user", user), slog.Int("days", req.Days), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("trial extended", slog.String("user", user), slog.Int("days", req.Days))
	render.JSON(w, r, response.StatusOKWithData(view))
}
