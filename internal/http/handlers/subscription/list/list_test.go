package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/grolo-gateway/internal/backend"
	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context, caller models.Caller) ([]models.SubscriptionView, error) {
	args := m.Called(ctx, caller)
	res, _ := args.Get(0).([]models.SubscriptionView)
	return res, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	caller := models.Caller{Username: "root", Role: models.RoleAdmin, Token: "tok"}

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, caller).Return([]models.SubscriptionView{
			{Record: models.SubscriptionRecord{User: "alice"}},
			{Record: models.SubscriptionRecord{User: "bob"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
		req = req.WithContext(middlewarectx.WithCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Data struct {
				Subscriptions []models.SubscriptionView `json:"subscriptions"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Len(t, got.Data.Subscriptions, 2)
	})

	t.Run("backend forbidden", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, caller).Return(nil, &backend.StatusError{Code: 403})

		req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
		req = req.WithContext(middlewarectx.WithCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"status":"Error","error":"action forbidden"}`, w.Body.String())
	})
}
