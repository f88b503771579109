// Package metrics defines the custom Prometheus metrics of the reservations
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Build one Metrics per process with New. A nil Registerer yields working
// but unregistered collectors, which keeps tests independent of the global
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reservations"

// Gate outcomes.
const (
	GateAnonymous     = "anonymous"
	GateAuthenticated = "authenticated"
	GateRejected      = "rejected"
	GateError         = "error"
)

// Login results.
const (
	LoginSuccess   = "success"
	LoginInvalid   = "invalid"
	LoginThrottled = "throttled"
	LoginError     = "error"
)

type Metrics struct {
	// GateDecisions counts authentication middleware outcomes.
	// Label:
	//   - outcome: anonymous, authenticated, rejected, error
	GateDecisions *prometheus.CounterVec

	// LoginAttempts counts calls to the login endpoint.
	// Label:
	//   - result: success, invalid, throttled, error
	LoginAttempts *prometheus.CounterVec

	// AuthzDenials counts requests refused by the authorization policy.
	// Label:
	//   - decision: unauthenticated, forbidden, not_found
	AuthzDenials *prometheus.CounterVec

	ReservationsCreated prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_gate_decisions_total",
			Help:      "Total number of authentication gate decisions, by outcome.",
		}, []string{"outcome"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		AuthzDenials: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authz_denials_total",
			Help:      "Total number of requests denied by the authorization policy.",
		}, []string{"decision"}),
		ReservationsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Total number of reservations created.",
		}),
	}
}
