package groloconfig

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/grolo-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

type MockService struct{ mock.Mock }

func (m *MockService) GroloConfig(ctx context.Context, caller models.Caller) (*models.GroloConfig, error) {
	args := m.Called(ctx, caller)
	res, _ := args.Get(0).(*models.GroloConfig)
	return res, args.Error(1)
}

func (m *MockService) UpdateGroloConfig(ctx context.Context, caller models.Caller, cfg models.GroloConfig) (*models.GroloConfig, error) {
	args := m.Called(ctx, caller, cfg)
	res, _ := args.Get(0).(*models.GroloConfig)
	return res, args.Error(1)
}

var caller = models.Caller{Username: "root", Role: models.RoleAdmin, Token: "tok"}

func withCaller(r *http.Request) *http.Request {
	return r.WithContext(middlewarectx.WithCaller(r.Context(), caller))
}

func TestGroloConfigHandler_Get(t *testing.T) {
	cfg := &models.GroloConfig{MinOdds: 1.2, MaxOdds: 2.5, MaxMatches: 10, MaxTotalOdds: 5000, DefaultStake: 1000}
	svc := new(MockService)
	svc.On("GroloConfig", mock.Anything, caller).Return(cfg, nil).Once()

	w := httptest.NewRecorder()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).Get(w, withCaller(httptest.NewRequest(http.MethodGet, "/football/config", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"min_odds":1.2,"max_odds":2.5,"max_matches":10,
		"max_total_odds":5000,"default_stake":1000,"auto_execute":false}}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestGroloConfigHandler_Update(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := models.GroloConfig{MinOdds: 1.2, MaxOdds: 2.5, MaxMatches: 10, MaxTotalOdds: 5000, DefaultStake: 1000}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "valid",
			body: `{"min_odds":1.2,"max_odds":2.5,"max_matches":10,"max_total_odds":5000,"default_stake":1000}`,
			setupMock: func(m *MockService) {
				m.On("UpdateGroloConfig", mock.Anything, caller, valid).Return(&valid, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "missing field",
			body:           `{"min_odds":1.2,"max_odds":2.5,"max_total_odds":5000,"default_stake":1000}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field MaxMatches is a required field",
		},
		{
			name: "out of range",
			body: `{"min_odds":1.2,"max_odds":2.5,"max_matches":60,"max_total_odds":5000,"default_stake":1000}`,
			setupMock: func(m *MockService) {
				bad := valid
				bad.MaxMatches = 60
				m.On("UpdateGroloConfig", mock.Anything, caller, bad).Return(nil, policy.ValidateGroloConfig(bad)).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "max matches must be between 1 and 50",
		},
		{
			name:           "invalid json",
			body:           `[`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			req := withCaller(httptest.NewRequest(http.MethodPut, "/football/config", strings.NewReader(tt.body)))
			New(logger, svc).Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
