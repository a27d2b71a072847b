// Package metrics defines the custom Prometheus metrics of the commerce API.
// HTTP request metrics come from echoprometheus; these cover the decisions
// the auth and ownership layers make.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// Auth decision outcomes.
const (
	OutcomeAllowed         = "allowed"
	OutcomeMissingToken    = "missing_token"
	OutcomeInvalidToken    = "invalid_token"
	OutcomeForbidden       = "forbidden"
	OutcomeUnauthenticated = "unauthenticated"
)

// AuthDecisionsTotal counts authentication and authorization decisions.
// Label:
//   - outcome: allowed, missing_token, invalid_token, forbidden, unauthenticated
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of auth gate decisions, by outcome.",
	},
	[]string{"outcome"},
)

// OwnershipDenialsTotal counts writes refused because the requester does
// not own the target shop.
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of shop ownership check failures, by resource.",
	},
	[]string{"resource"},
)

// RecordsCreatedTotal counts successful inserts.
// Label:
//   - resource: shop, item, invoice, operator
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by resource.",
	},
	[]string{"resource"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: success, invalid_credentials, throttled, error
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of operator login attempts, by result.",
	},
	[]string{"result"},
)
