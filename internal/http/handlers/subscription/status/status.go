// Package status реализует HTTP-обработчик получения подписки пользователя.
//
// В ответе возвращается запись подписки из бэкенда, её отображение
// (метка, цвет, описание, иконка) и действия, доступные вызывающему.
package status

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

// Handler обрабатывает GET /subscriptions/{user}.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис подписок
}

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Status(ctx context.Context, caller models.Caller, user string) (*models.SubscriptionView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение подписки.
// Значение "me" в пути заменяется на имя вызывающего.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

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
	if user == "" || user == "me" {
		user = caller.Username
	}

	view, err := h.service.Status(r.Context(), caller, user)
	if err != nil {
		log.Error("failed to get subscription", slog.String("user", user), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Debug("subscription resolved", slog.String("user", user), slog.String("label", view.Display.Label))
	render.JSON(w, r, response.StatusOKWithData(view))
}
