// Package metrics defines and registers all custom Prometheus metrics for
// the book-app API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookapp"

// RegistrationsTotal counts successful account registrations.
// Label:
//   - role: the principal kind registered ("AUTHOR" or "READER")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: the principal kind attempting login
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// PrincipalsDeletedTotal counts administrative account deletions.
// Label:
//   - role: the kind of account deleted ("AUTHOR" or "READER")
var PrincipalsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "principals_deleted_total",
		Help:      "Total number of accounts deleted by admins, by role.",
	},
	[]string{"role"},
)

// BooksCreatedTotal counts books added to the catalog.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)
