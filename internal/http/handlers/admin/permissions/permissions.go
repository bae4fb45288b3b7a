// Package permissions реализует HTTP-обработчик прав вызывающего.
// Клиент использует ответ, чтобы показать или скрыть элементы панели администратора.
package permissions

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

// Handler обрабатывает GET /admin/permissions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение прав вызывающего.
type Service interface {
	Permissions(ctx context.Context, caller models.Caller) (*models.AdminPermissionSet, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.permissions"

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

	perms, err := h.service.Permissions(r.Context(), caller)
	if err != nil {
		log.Error("failed to get permissions", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"role":        caller.Role,
		"permissions": perms,
	}))
}
