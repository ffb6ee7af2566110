// Package metrics defines the forum's domain counters. HTTP request metrics
// come from echoprometheus; these count what happened behind the handlers.
//
// Call Register once per registry before serving /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "forum"

// UsersRegisteredTotal counts accounts created through registration or the
// admin panel.
// Label:
//   - source: "register" or "admin"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
	[]string{"source"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var PostsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts published.",
	},
)

// ImportsTotal counts bulk imports.
// Label:
//   - result: "applied" or "rejected"
var ImportsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of bulk imports, by result.",
	},
	[]string{"result"},
)

// Register adds every forum collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		UsersRegisteredTotal,
		LoginAttemptsTotal,
		PostsCreatedTotal,
		ImportsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
