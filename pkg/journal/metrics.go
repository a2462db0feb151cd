// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package journal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "rewind"

// Subsystem for journal metrics
const journalSubsystem = "journal"

// Metrics holds all Prometheus metrics for journal operations.
//
// Pass one instance via Options.Metrics to every journal that should be
// instrumented; a nil Options.Metrics disables instrumentation entirely.
//
// Thread Safety: Safe for concurrent use (Prometheus metrics are thread-safe).
type Metrics struct {
	// AppendsTotal counts commands appended as new history entries.
	AppendsTotal prometheus.Counter

	// MergesTotal counts commands coalesced into the head entry.
	MergesTotal prometheus.Counter

	// UndosTotal counts undo invocations that reversed a command.
	UndosTotal prometheus.Counter

	// RedosTotal counts redo invocations that re-applied a command.
	RedosTotal prometheus.Counter

	// EvictionsTotal counts oldest entries destroyed by capacity eviction.
	EvictionsTotal prometheus.Counter

	// TruncatedTotal counts entries destroyed by redo-branch truncation,
	// explicit Truncate calls, Clear, and Dispose.
	TruncatedTotal prometheus.Counter

	// Depth is the current number of live history entries.
	Depth prometheus.Gauge
}

// NewMetrics creates journal metrics registered on the default registerer.
//
// Description:
//
//	Uses promauto against prometheus.DefaultRegisterer. Call at most once
//	per process; a second call panics with a duplicate registration.
//
// Outputs:
//   - *Metrics: The created metrics. Never nil.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates journal metrics on a caller-supplied
// registerer.
//
// Description:
//
//	Use an isolated prometheus.NewRegistry() in tests so parallel tests
//	and repeated constructions never collide on the global registry. A
//	nil registerer creates working but unregistered metrics.
//
// Inputs:
//   - reg: Target registerer. May be nil.
//
// Outputs:
//   - *Metrics: The created metrics. Never nil.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AppendsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "appends_total",
			Help:      "Total commands appended as new history entries",
		}),

		MergesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "merges_total",
			Help:      "Total commands coalesced into the head entry",
		}),

		UndosTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "undos_total",
			Help:      "Total undo invocations that reversed a command",
		}),

		RedosTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "redos_total",
			Help:      "Total redo invocations that re-applied a command",
		}),

		EvictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "evictions_total",
			Help:      "Total oldest entries destroyed by capacity eviction",
		}),

		TruncatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "entries_truncated_total",
			Help:      "Total entries destroyed by truncation, clear, or dispose",
		}),

		Depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: journalSubsystem,
			Name:      "depth",
			Help:      "Current number of live history entries",
		}),
	}
}
