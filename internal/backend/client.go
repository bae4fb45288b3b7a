// Package backend реализует HTTP-клиент удалённого API Grolo: вход,
// сведения о пользователе, подписки, управление ролями и футбольные ставки.
//
// Ответы бэкенда разбираются в промежуточные структуры и проверяются
// validator-ом до преобразования в models, поэтому неполный ответ
// возвращается как ErrInvalidPayload, а не как нулевые значения.
// Клиент не повторяет запросы.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/grolo-gateway/internal/metrics"
)

var (
	// ErrUnauthorized бэкенд отклонил токен.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrForbidden бэкенд запретил действие.
	ErrForbidden = errors.New("backend: forbidden")
	// ErrNotFound запрошенный объект не найден.
	ErrNotFound = errors.New("backend: not found")
	// ErrInvalidPayload ответ бэкенда не содержит обязательных полей.
	ErrInvalidPayload = errors.New("backend: invalid payload")
)

// StatusError ответ бэкенда с кодом не 2xx.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Code, e.Message)
}

// Is сопоставляет код ответа с ошибками-категориями.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// Client клиент API Grolo.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// New создаёт клиент для baseURL с таймаутом на запрос.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
	}
}

// errorBody форма ошибки бэкенда.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do выполняет запрос. route шаблон пути для метрик, path фактический путь.
func (c *Client) do(ctx context.Context, method, route, path, token string, body, out any) error {
	const op = "backend.do"

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(method, route, 0, time.Since(start))
		return fmt.Errorf("%s: %s %s: %w", op, method, route, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackend(method, route, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidPayload, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidPayload, err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	msg := ""
	if json.Unmarshal(raw, &eb) == nil {
		switch {
		case eb.Detail != "":
			msg = eb.Detail
		case eb.Message != "":
			msg = eb.Message
		case eb.Error != "":
			msg = eb.Error
		}
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
