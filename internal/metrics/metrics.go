// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

// Package metrics exposes the Prometheus instruments of the sync engine.
// Collectors are registered on the default registry and served by the HTTP
// server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntriesAppended counts changelog entries written, by kind.
	EntriesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gastify",
		Subsystem: "changelog",
		Name:      "entries_appended_total",
		Help:      "Changelog entries appended, labelled by entry kind.",
	}, []string{"kind"})

	// EntriesPruned counts changelog entries removed by the retention worker.
	EntriesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gastify",
		Subsystem: "changelog",
		Name:      "entries_pruned_total",
		Help:      "Changelog entries deleted by retention pruning.",
	})

	// PageQueries counts incremental-sync page fetches.
	PageQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gastify",
		Subsystem: "changelog",
		Name:      "page_queries_total",
		Help:      "Changelog page queries served.",
	})

	// PendingProbes counts poll existence checks, by result.
	PendingProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gastify",
		Subsystem: "changelog",
		Name:      "pending_probes_total",
		Help:      "Poll existence probes served, labelled by result.",
	}, []string{"pending"})

	// ReconcileFeeds counts full reconciliation feeds served.
	ReconcileFeeds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gastify",
		Subsystem: "sync",
		Name:      "reconcile_feeds_total",
		Help:      "Full reconciliation feeds served.",
	})
)
