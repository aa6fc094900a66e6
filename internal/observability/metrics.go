// Package observability exposes Prometheus metrics for the backend.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MutationsTotal counts committed state mutations by operation name.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "splitsnap",
		Name:      "state_mutations_total",
		Help:      "Number of committed state mutations, by operation.",
	}, []string{"op"})

	// UndosTotal counts undo calls that actually restored a snapshot.
	UndosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "splitsnap",
		Name:      "state_undos_total",
		Help:      "Number of undo operations that restored a prior state.",
	})

	// SnapshotSaveFailures counts best-effort persistence failures. These
	// are swallowed, so the counter is the only place they surface besides
	// the log.
	SnapshotSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "splitsnap",
		Name:      "snapshot_save_failures_total",
		Help:      "Number of failed state snapshot writes.",
	})

	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "splitsnap",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
)
