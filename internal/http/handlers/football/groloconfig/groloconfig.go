// Package groloconfig реализует HTTP-обработчики чтения и изменения
// настроек полной системы ставок.
package groloconfig

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/response"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Service описывает работу с настройками полной системы.
type Service interface {
	GroloConfig(ctx context.Context, caller models.Caller) (*models.GroloConfig, error)
	UpdateGroloConfig(ctx context.Context, caller models.Caller, cfg models.GroloConfig) (*models.GroloConfig, error)
}

// Handler обрабатывает GET и PUT /football/config.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Get возвращает текущие настройки.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.football.groloconfig.Get"

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

	cfg, err := h.service.GroloConfig(r.Context(), caller)
	if err != nil {
		log.Error("failed to get grolo config", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(cfg))
}

// Update проверяет и сохраняет настройки.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.football.groloconfig.Update"

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

	var req models.GroloConfig
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	saved, err := h.service.UpdateGroloConfig(r.Context(), caller, req)
	if err != nil {
		log.Error("failed to update grolo config", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("grolo config updated", slog.Any("config", saved))
	render.JSON(w, r, response.StatusOKWithData(saved))
}
