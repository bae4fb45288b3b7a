// Package matches реализует HTTP-обработчик списка матчей-кандидатов.
package matches

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/response"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Handler обрабатывает GET /football/matches?system=grolo|mini.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение матчей.
type Service interface {
	Matches(ctx context.Context, caller models.Caller, system models.System) ([]models.Match, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP без параметра system возвращает матчи полной системы.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.football.matches"

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

	system := models.System(r.URL.Query().Get("system"))
	if system == "" {
		system = models.SystemGrolo
	}

	matches, err := h.service.Matches(r.Context(), caller, system)
	if err != nil {
		log.Error("failed to get matches", slog.String("system", string(system)), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"system":  system,
		"matches": matches,
	}))
}
