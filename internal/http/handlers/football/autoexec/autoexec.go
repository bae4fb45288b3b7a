// Package autoexec реализует HTTP-обработчик переключения автоматического
// исполнения ставки. Само исполнение в 00:00 по Мадагаскару выполняет бэкенд.
package autoexec

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

// Handler обрабатывает PUT /football/auto-execution.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает переключение автоисполнения.
type Service interface {
	SetAutoExecution(ctx context.Context, caller models.Caller, system models.System, enabled bool) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.football.autoexec"

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

	var req models.AutoExecutionRequest
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

	system := models.System(req.System)
	if err := h.service.SetAutoExecution(r.Context(), caller, system, *req.Enabled); err != nil {
		log.Error("failed to set auto execution", slog.String("system", req.System), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("auto execution toggled", slog.String("system", req.System), slog.Bool("enabled", *req.Enabled))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"system":  system,
		"enabled": *req.Enabled,
	}))
}
