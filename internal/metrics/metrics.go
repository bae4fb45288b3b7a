// Package metrics содержит метрики Prometheus шлюза.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

func init() {
	prometheus.MustRegister(
		policyDecisionsTotal,
		backendRequestsTotal,
		backendRequestDuration,
	)
}

var (
	policyDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grolo_policy_decisions_total",
			Help: "Local policy decisions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grolo_backend_requests_total",
			Help: "Requests sent to the Grolo backend by response code.",
		},
		[]string{"method", "path", "code"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grolo_backend_request_duration_seconds",
			Help:    "Latency of requests to the Grolo backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Outcome переводит результат проверки политики в метку.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, policy.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, policy.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, policy.ErrSelfActionForbidden):
		return "self_action_forbidden"
	case errors.Is(err, policy.ErrUnknownState):
		return "unknown_state"
	default:
		return "error"
	}
}

// ObservePolicy учитывает решение политики по действию.
func ObservePolicy(action string, err error) {
	policyDecisionsTotal.WithLabelValues(action, Outcome(err)).Inc()
}

// ObserveBackend учитывает запрос к бэкенду. code равен 0, если ответа не было.
func ObserveBackend(method, path string, code int, elapsed time.Duration) {
	backendRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	backendRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
