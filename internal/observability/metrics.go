// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts login attempts by outcome (success, invalid_credentials, error).
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_auth_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// Registrations counts account registrations by role.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_registrations_total",
		Help: "Total number of account registrations by role",
	}, []string{"role"})

	// PostOperations counts post mutations by action and outcome.
	PostOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_operations_total",
		Help: "Total number of post operations by action and outcome",
	}, []string{"action", "outcome"})

	// TokensRevoked counts tokens blacklisted via logout.
	TokensRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_tokens_revoked_total",
		Help: "Total number of session tokens revoked",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
