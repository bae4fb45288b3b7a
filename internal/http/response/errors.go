package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/grolo-gateway/internal/backend"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

// FromError переводит ошибку сервиса в HTTP-статус и сообщение для клиента.
// Сообщения ошибок политики отдаются как есть, внутренние детали не раскрываются.
func FromError(err error) (int, string) {
	if msg, ok := policy.Message(err); ok {
		switch {
		case errors.Is(err, policy.ErrInvalidRange):
			return http.StatusUnprocessableEntity, msg
		case errors.Is(err, policy.ErrPermissionDenied), errors.Is(err, policy.ErrSelfActionForbidden):
			return http.StatusForbidden, msg
		case errors.Is(err, policy.ErrUnknownState):
			return http.StatusBadGateway, msg
		}
	}

	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, backend.ErrForbidden):
		return http.StatusForbidden, backendMessage(err, "action forbidden")
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound, backendMessage(err, "not found")
	case errors.Is(err, backend.ErrInvalidPayload):
		return http.StatusBadGateway, "invalid backend response"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "backend timeout"
	}

	var se *backend.StatusError
	if errors.As(err, &se) {
		if se.Code >= 400 && se.Code < 500 {
			return se.Code, backendMessage(err, http.StatusText(se.Code))
		}
		return http.StatusBadGateway, "backend unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}

// RenderError пишет ответ с ошибкой и статусом, выбранным FromError.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := FromError(err)
	render.Status(r, code)
	render.JSON(w, r, Error(msg))
}

func backendMessage(err error, fallback string) string {
	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
