package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authDecisionsTotal counts write authorization decisions.
	authDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_write_decisions_total",
			Help: "Write authorization decisions by result",
		},
		[]string{"result"}, // allowed | unauthorized | forbidden
	)

	// forbiddenAttempts counts forbidden write attempts by role and method.
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden write attempts by role and method",
		},
		[]string{"role", "method"},
	)
)
